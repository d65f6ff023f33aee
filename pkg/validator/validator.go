// Package validator 注册gin绑定引擎的自定义校验规则
//
// 设计说明：
// 1. gin内置go-playground/validator，通过binding.Validator.Engine()拿到底层引擎
// 2. dto中的`binding:"isbn"`即由这里注册的规则驱动
// 3. 规则只做格式校验，业务规则（年份范围、重复检查）在领域服务中处理
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var nonISBNChars = regexp.MustCompile(`[^0-9X]`)

// Register 注册所有自定义校验规则
// 在main中初始化gin之前调用一次
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("isbn", validateISBN)
}

// validateISBN 校验ISBN格式
// 规则：去掉分隔符后必须是10位或13位（允许校验位X）
// 空值由omitempty处理，这里只管非空值
func validateISBN(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	if isbn == "" {
		return true
	}
	return NormalizeISBN(isbn) != ""
}

// NormalizeISBN 规整ISBN：大写、去除分隔符
// 返回空字符串表示格式非法
func NormalizeISBN(isbn string) string {
	cleaned := nonISBNChars.ReplaceAllString(strings.ToUpper(isbn), "")
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return ""
	}
	return cleaned
}
