package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试针对一个已经运行的服务实例(默认http://localhost:8080),
// 验证完整的HTTP往返:路由、绑定、状态码映射、分页封装。
// 服务不可达时整个测试文件跳过,不算失败。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

var httpClient = &http.Client{Timeout: Timeout}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	YearOfReleasing int      `json:"year_of_releasing"`
	Genre           string   `json:"genre"`
	AmountOfPages   int      `json:"amount_of_pages"`
	Status          string   `json:"status"`
	ISBN            string   `json:"isbn"`
	CoverURL        string   `json:"cover_url"`
	Description     string   `json:"description"`
	Subjects        []string `json:"subjects"`
}

// PageData 分页响应数据
type PageData struct {
	Items   []BookData `json:"items"`
	Total   int        `json:"total"`
	Offset  int        `json:"offset"`
	Limit   int        `json:"limit"`
	HasNext bool       `json:"has_next"`
}

// RequireServer 服务不可达时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	resp, err := httpClient.Get(PingURL)
	if err != nil {
		t.Skipf("服务未运行,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// DoJSON 发送带JSON体的请求并解析统一响应,返回HTTP状态码
func DoJSON(t *testing.T, method, url string, body interface{}) (int, Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "序列化请求体失败")
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "构建请求失败")
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	require.NoError(t, err, "发送请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应失败")

	var parsed Response
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "解析响应失败: %s", raw)
	}
	return resp.StatusCode, parsed
}

// CreateTestBook 创建一本测试图书并返回其数据
func CreateTestBook(t *testing.T, title, author string) BookData {
	t.Helper()

	status, resp := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
		"title":             title,
		"author":            author,
		"year_of_releasing": 1990,
		"genre":             "Test Genre",
		"amount_of_pages":   234,
	})
	require.Equal(t, http.StatusCreated, status, "创建测试图书失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	return book
}

// UniqueTitle 生成不会与历史数据冲突的书名
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
