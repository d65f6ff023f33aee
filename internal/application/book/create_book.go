package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CreateBookUseCase 图书创建用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 业务规则校验(重复检查、年份范围)由领域服务负责
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title           string // 书名
	Author          string // 作者
	YearOfReleasing int    // 出版年份
	Genre           string // 流派
	AmountOfPages   int    // 页数
	Status          string // 状态,为空时缺省为available
	ISBN            string // ISBN(已归一化),为空时尝试从元数据补全
	Description     string // 描述,为空时尝试从元数据补全
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResult, error) {
	entity := book.NewBook(
		req.Title,
		req.Author,
		req.YearOfReleasing,
		req.Genre,
		req.AmountOfPages,
		book.Status(req.Status),
	)
	entity.ISBN = req.ISBN
	entity.Description = req.Description

	created, err := uc.bookService.CreateBook(ctx, entity)
	if err != nil {
		return nil, err
	}

	metrics.IncBooksCreated()

	return toBookResult(created), nil
}
