package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

// TestError_StatusMapping 测试业务错误到HTTP状态码的映射
func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"图书不存在", apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"), 404, apperrors.ErrCodeBookNotFound},
		{"重复图书", apperrors.New(apperrors.ErrCodeBookDuplicate, "重复"), 409, apperrors.ErrCodeBookDuplicate},
		{"存储不可用", apperrors.New(apperrors.ErrCodeStorageUnavailable, "后端不可达"), 503, apperrors.ErrCodeStorageUnavailable},
		{"校验失败", apperrors.New(apperrors.ErrCodeValidation, "参数错误"), 400, apperrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

// TestSuccessAndCreated 测试成功响应形态
func TestSuccessAndCreated(t *testing.T) {
	t.Run("Success返回200", func(t *testing.T) {
		c, w := newTestContext()
		Success(c, gin.H{"id": 1})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Code)
		assert.Equal(t, "success", resp.Message)
	})

	t.Run("Created返回201", func(t *testing.T) {
		c, w := newTestContext()
		Created(c, gin.H{"id": 1})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("NoContent返回204无响应体", func(t *testing.T) {
		c, w := newTestContext()
		NoContent(c)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}

// TestPageData 测试分页封装
func TestPageData(t *testing.T) {
	t.Run("还有下一页", func(t *testing.T) {
		page := NewPageData([]int{1, 2, 3}, 10, 0, 3)
		assert.True(t, page.HasNext)
	})

	t.Run("最后一页", func(t *testing.T) {
		page := NewPageData([]int{1}, 10, 9, 3)
		assert.False(t, page.HasNext)
	})

	t.Run("正好整除的边界", func(t *testing.T) {
		page := NewPageData([]int{1, 2, 3}, 6, 3, 3)
		assert.False(t, page.HasNext, "offset+limit==total时没有下一页")
	})
}
