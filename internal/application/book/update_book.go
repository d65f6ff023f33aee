package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// UpdateBookUseCase 图书部分更新用例
// 设计说明:
// 1. 请求DTO用指针字段区分"未提供"和"设为零值",实现PATCH语义
// 2. 字段合法性与存在性检查由领域服务负责
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 更新请求DTO
// nil字段表示"保持不变"
type UpdateBookRequest struct {
	Title           *string
	Author          *string
	YearOfReleasing *int
	Genre           *string
	AmountOfPages   *int
	Status          *string
	ISBN            *string
	Description     *string
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id int, req UpdateBookRequest) (*BookResult, error) {
	patch := book.UpdatePatch{
		Title:           req.Title,
		Author:          req.Author,
		YearOfReleasing: req.YearOfReleasing,
		Genre:           req.Genre,
		AmountOfPages:   req.AmountOfPages,
		ISBN:            req.ISBN,
		Description:     req.Description,
	}
	if req.Status != nil {
		status := book.Status(*req.Status)
		patch.Status = &status
	}

	updated, err := uc.bookService.UpdateBook(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toBookResult(updated), nil
}
