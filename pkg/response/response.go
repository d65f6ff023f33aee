package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent 删除成功响应（204，无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 设计说明：
// 1. HTTP状态码由业务错误码推导（40901→409，40401→404，50300→503）
// 2. 内部错误只进日志，客户端只看到{code,message}
//
// 用法：
//
//	book, err := createUseCase.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	// 记录内部错误详情（仅服务端可见）
	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
// offset/limit语义与仓储层一致，has_next = offset+limit < total
type PageData struct {
	Items   interface{} `json:"items"`    // 数据列表
	Total   int         `json:"total"`    // 过滤后、分页前的总记录数
	Offset  int         `json:"offset"`   // 当前偏移量
	Limit   int         `json:"limit"`    // 每页大小
	HasNext bool        `json:"has_next"` // 是否还有下一页
}

// NewPageData 创建分页数据
func NewPageData(items interface{}, total, offset, limit int) *PageData {
	return &PageData{
		Items:   items,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasNext: offset+limit < total,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, items interface{}, total, offset, limit int) {
	Success(c, NewPageData(items, total, offset, limit))
}
