package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Title  string // 书名子串(大小写不敏感)
	Author string // 作者子串(大小写不敏感)
	Status string // 状态精确匹配
	Genre  string // 流派子串(大小写不敏感)
	Offset int    // 分页偏移
	Limit  int    // 页大小,0时取缺省值
}

// ListBooksResponse 列表查询响应DTO
// Total是过滤后的总数,HasNext = Offset+Limit < Total
type ListBooksResponse struct {
	Items   []*BookResult `json:"items"`
	Total   int           `json:"total"`
	Offset  int           `json:"offset"`
	Limit   int           `json:"limit"`
	HasNext bool          `json:"has_next"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	filters := book.Filters{
		Title:  req.Title,
		Author: req.Author,
		Status: book.Status(req.Status),
		Genre:  req.Genre,
		Offset: req.Offset,
		Limit:  req.Limit,
	}
	filters.Normalize()

	books, total, err := uc.bookService.ListBooks(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]*BookResult, 0, len(books))
	for _, b := range books {
		items = append(items, toBookResult(b))
	}

	return &ListBooksResponse{
		Items:   items,
		Total:   total,
		Offset:  filters.Offset,
		Limit:   filters.Limit,
		HasNext: filters.Offset+filters.Limit < total,
	}, nil
}
