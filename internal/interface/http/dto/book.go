package dto

import appbook "github.com/xiebiao/bookcatalog/internal/application/book"

// CreateBookRequest HTTP创建图书请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// - oneof: 枚举值校验
// - isbn: 自定义ISBN格式校验(在pkg/validator中注册)
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=500" example:"Dune"`
	Author          string `json:"author" binding:"required,max=200" example:"Frank Herbert"`
	YearOfReleasing int    `json:"year_of_releasing" binding:"required" example:"1965"`
	Genre           string `json:"genre" binding:"required,max=100" example:"Science Fiction"`
	AmountOfPages   int    `json:"amount_of_pages" binding:"required,min=1" example:"412"`
	Status          string `json:"status" binding:"omitempty,oneof=available borrowed reserved maintenance" example:"available"`
	ISBN            string `json:"isbn" binding:"omitempty,isbn" example:"9780441013593"`
	Description     string `json:"description" binding:"omitempty,max=2000" example:"Epic science fiction novel"`
}

// UpdateBookRequest HTTP部分更新请求
// 指针字段区分"未提供"和"设为零值":字段缺席时保持原值不变
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=500"`
	Author          *string `json:"author" binding:"omitempty,max=200"`
	YearOfReleasing *int    `json:"year_of_releasing" binding:"omitempty"`
	Genre           *string `json:"genre" binding:"omitempty,max=100"`
	AmountOfPages   *int    `json:"amount_of_pages" binding:"omitempty,min=1"`
	Status          *string `json:"status" binding:"omitempty,oneof=available borrowed reserved maintenance"`
	ISBN            *string `json:"isbn" binding:"omitempty,isbn"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
}

// ListBooksRequest HTTP列表查询请求(query参数)
type ListBooksRequest struct {
	Title  string `form:"title" binding:"omitempty,max=500" example:"dune"`
	Author string `form:"author" binding:"omitempty,max=200" example:"herbert"`
	Status string `form:"status" binding:"omitempty,oneof=available borrowed reserved maintenance" example:"available"`
	Genre  string `form:"genre" binding:"omitempty,max=100" example:"fiction"`
	Offset int    `form:"offset" binding:"omitempty,min=0" example:"0"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// BookResponse HTTP图书响应
// 用例层的BookResult已经是序列化友好的形状,直接复用避免第三次字段搬运
type BookResponse = appbook.BookResult
