package errors

import (
	"errors"
	"testing"
)

// TestHTTPStatus 测试业务错误码到HTTP状态码的映射
// 规则：错误码前3位即HTTP状态码，越界时回退到500
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"参数校验失败映射400", ErrCodeValidation, 400},
		{"绑定失败映射400", ErrCodeBindError, 400},
		{"图书不存在映射404", ErrCodeBookNotFound, 404},
		{"重复图书映射409", ErrCodeBookDuplicate, 409},
		{"存储不可用映射503", ErrCodeStorageUnavailable, 503},
		{"内部错误映射500", ErrCodeInternal, 500},
		{"元数据不可用映射502", ErrCodeMetadataUnavailable, 502},
		{"非法小错误码回退500", 99, 500},
		{"非法大错误码回退500", 99999, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%d) = %d, 期望%d", tt.code, got, tt.want)
			}
		})
	}
}

// TestWrapCode_Unwrap 测试包装错误保留底层错误链
func TestWrapCode_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := WrapCode(ErrCodeStorageUnavailable, cause, "存储后端不可用")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is应能找到底层错误")
	}
	if wrapped.Code != ErrCodeStorageUnavailable {
		t.Errorf("错误码期望%d，实际%d", ErrCodeStorageUnavailable, wrapped.Code)
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As应能提取*AppError")
	}
}

// TestGetAppError 测试从错误链中提取AppError
func TestGetAppError(t *testing.T) {
	t.Run("直接的AppError", func(t *testing.T) {
		err := New(ErrCodeBookNotFound, "图书不存在")
		got := GetAppError(err)
		if got == nil || got.Code != ErrCodeBookNotFound {
			t.Errorf("期望提取到错误码%d，实际: %+v", ErrCodeBookNotFound, got)
		}
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		got := GetAppError(errors.New("plain"))
		if got == nil || got.Code != ErrCodeInternal {
			t.Errorf("普通错误应包装为错误码%d，实际: %+v", ErrCodeInternal, got)
		}
	})
}
