package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// DeleteBookUseCase 图书删除用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除用例
// 图书不存在时返回ErrBookNotFound,由HTTP层映射为404
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id int) error {
	return uc.bookService.DeleteBook(ctx, id)
}
