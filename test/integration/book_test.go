package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
//
// 测试场景覆盖:
// 1. 图书完整生命周期(创建→查询→更新→删除)
// 2. 状态码映射(201/200/204/400/404/409)
// 3. 过滤与分页
// 4. 参数验证(必填字段、状态枚举、ISBN格式)

// TestBookLifecycle 测试图书完整生命周期
func TestBookLifecycle(t *testing.T) {
	RequireServer(t)

	title := UniqueTitle("Lifecycle Book")
	created := CreateTestBook(t, title, "Integration Author")

	require.NotZero(t, created.ID, "图书ID应该大于0")
	assert.Equal(t, title, created.Title)
	assert.Equal(t, "available", created.Status, "状态缺省为available")

	t.Run("按ID查询", func(t *testing.T) {
		status, resp := DoJSON(t, http.MethodGet, bookURL(created.ID), nil)
		require.Equal(t, http.StatusOK, status)

		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, title, got.Title)
	})

	t.Run("部分更新", func(t *testing.T) {
		status, resp := DoJSON(t, http.MethodPut, bookURL(created.ID),
			map[string]interface{}{"status": "borrowed"})
		require.Equal(t, http.StatusOK, status)

		var got BookData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "borrowed", got.Status)
		assert.Equal(t, title, got.Title, "未提供的字段保持不变")
	})

	t.Run("删除后查询404", func(t *testing.T) {
		status, _ := DoJSON(t, http.MethodDelete, bookURL(created.ID), nil)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = DoJSON(t, http.MethodGet, bookURL(created.ID), nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = DoJSON(t, http.MethodDelete, bookURL(created.ID), nil)
		assert.Equal(t, http.StatusNotFound, status, "重复删除返回404")
	})
}

// TestBookDuplicate 测试书名作者重复检查
func TestBookDuplicate(t *testing.T) {
	RequireServer(t)

	title := UniqueTitle("Duplicate Book")
	created := CreateTestBook(t, title, "Same Author")
	t.Cleanup(func() { DoJSON(t, http.MethodDelete, bookURL(created.ID), nil) })

	status, resp := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
		"title":             title,
		"author":            "same author", // 大小写不敏感
		"year_of_releasing": 1990,
		"genre":             "Test Genre",
		"amount_of_pages":   234,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotZero(t, resp.Code)
}

// TestBookValidation 测试参数验证
func TestBookValidation(t *testing.T) {
	RequireServer(t)

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"title":             UniqueTitle("Validation Book"),
			"author":            "Author",
			"year_of_releasing": 1990,
			"genre":             "Test Genre",
			"amount_of_pages":   234,
		}
	}

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"缺少书名", func(m map[string]interface{}) { delete(m, "title") }},
		{"缺少作者", func(m map[string]interface{}) { delete(m, "author") }},
		{"非法状态", func(m map[string]interface{}) { m["status"] = "lost" }},
		{"非法ISBN", func(m map[string]interface{}) { m["isbn"] = "12345" }},
		{"页数为0", func(m map[string]interface{}) { m["amount_of_pages"] = 0 }},
		{"年份在未来", func(m map[string]interface{}) { m["year_of_releasing"] = 3000 }},
		{"年份过早", func(m map[string]interface{}) { m["year_of_releasing"] = 1000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			tt.mutate(body)
			status, _ := DoJSON(t, http.MethodPost, BaseURL+"/books", body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

// TestBookListFiltering 测试列表过滤与分页
func TestBookListFiltering(t *testing.T) {
	RequireServer(t)

	marker := UniqueTitle("FilterMarker")
	first := CreateTestBook(t, marker+" One", "Filter Author")
	second := CreateTestBook(t, marker+" Two", "Filter Author")
	t.Cleanup(func() {
		DoJSON(t, http.MethodDelete, bookURL(first.ID), nil)
		DoJSON(t, http.MethodDelete, bookURL(second.ID), nil)
	})

	t.Run("书名子串过滤", func(t *testing.T) {
		status, resp := DoJSON(t, http.MethodGet, BaseURL+"/books?title="+marker, nil)
		require.Equal(t, http.StatusOK, status)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, 2, page.Total)
	})

	t.Run("分页参数", func(t *testing.T) {
		status, resp := DoJSON(t, http.MethodGet,
			BaseURL+"/books?title="+marker+"&offset=1&limit=1", nil)
		require.Equal(t, http.StatusOK, status)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.Total)
		assert.False(t, page.HasNext)
	})

	t.Run("超出上限的limit被拒绝", func(t *testing.T) {
		status, _ := DoJSON(t, http.MethodGet, BaseURL+"/books?limit=9999", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func bookURL(id int) string {
	return fmt.Sprintf("%s/books/%d", BaseURL, id)
}
