package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露后端实现细节）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapCode 用指定错误码包装底层错误
// 典型用法：存储后端不可达时包装为ErrCodeStorageUnavailable
func WrapCode(code int, err error, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数/业务规则校验失败（客户端的问题）
// - 404xx: 资源不存在
// - 409xx: 唯一键冲突
// - 502xx: 外部元数据服务异常（不会透传到写路径调用方）
// - 503xx: 存储后端不可用（不是客户端的问题）
// - 500xx: 其他内部错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误

	// 外部元数据服务错误（50200-50299）
	ErrCodeMetadataUnavailable = 50200 // 元数据服务不可达
	ErrCodeEventPublishFailed  = 50201 // 事件发布失败

	// 存储后端错误（50300-50399）
	ErrCodeStorageUnavailable = 50300 // 存储后端不可达

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40401 // 图书不存在

	// 唯一键冲突（40900-40999）
	ErrCodeDuplicateEntry = 40900 // 重复记录(通用)
	ErrCodeBookDuplicate  = 40901 // 同名同作者图书已存在

	// 参数/业务校验错误（40000-40099）
	ErrCodeValidation    = 40000 // 校验失败(通用)
	ErrCodeBindError     = 40001 // 参数绑定失败
	ErrCodeInvalidYear   = 40002 // 出版年份越界
	ErrCodeInvalidISBN   = 40003 // ISBN格式不正确
	ErrCodeInvalidStatus = 40004 // 图书状态非法
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	// 存储后端
	ErrStorageUnavailable = New(ErrCodeStorageUnavailable, "存储后端不可用")

	// 外部服务
	ErrMetadataUnavailable = New(ErrCodeMetadataUnavailable, "元数据服务不可用")

	// 参数错误
	ErrValidation = New(ErrCodeValidation, "参数校验失败")
	ErrBindError  = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HTTPStatus 根据业务错误码推导HTTP状态码
// 设计说明：
// 1. 错误码前三位即HTTP状态码（40001 → 400，50300 → 503）
// 2. 客户端永远只看到结构化的{code,message}，不会看到原始后端错误
func HTTPStatus(code int) int {
	if code == 0 {
		return http.StatusOK
	}
	status := code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}
