package book

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookResult 各用例共用的图书输出DTO
// 时间字段统一格式化为RFC3339,避免各用例各自为政
type BookResult struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	YearOfReleasing int      `json:"year_of_releasing"`
	Genre           string   `json:"genre"`
	AmountOfPages   int      `json:"amount_of_pages"`
	Status          string   `json:"status"`
	ISBN            string   `json:"isbn,omitempty"`
	CoverURL        string   `json:"cover_url,omitempty"`
	Description     string   `json:"description,omitempty"`
	Subjects        []string `json:"subjects,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// toBookResult 领域实体转输出DTO
func toBookResult(b *book.Book) *BookResult {
	return &BookResult{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		YearOfReleasing: b.YearOfReleasing,
		Genre:           b.Genre,
		AmountOfPages:   b.AmountOfPages,
		Status:          string(b.Status),
		ISBN:            b.ISBN,
		CoverURL:        b.CoverURL,
		Description:     b.Description,
		Subjects:        b.Subjects,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}
