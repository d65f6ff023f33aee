package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// newBinServer 模拟外部单文档存储：GET返回当前文档,PUT整体替换
func newBinServer(t *testing.T) (*httptest.Server, *[]byte) {
	t.Helper()
	var stored []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Master-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			if stored == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(stored)
		case http.MethodPut:
			body := make([]byte, r.ContentLength)
			r.Body.Read(body)
			stored = body
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &stored
}

// TestJSONBinClient_MissingBin 测试bin不存在时返回空集合
func TestJSONBinClient_MissingBin(t *testing.T) {
	srv, _ := newBinServer(t)
	c := NewJSONBinClient(srv.URL, "test-key", srv.Client())

	records, err := c.GetData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestJSONBinClient_SaveAndGet 测试整文档往返
func TestJSONBinClient_SaveAndGet(t *testing.T) {
	srv, stored := newBinServer(t)
	c := NewJSONBinClient(srv.URL, "test-key", srv.Client())
	ctx := context.Background()

	require.NoError(t, c.SaveData(ctx, []Record{
		{"id": 1, "title": "Dune"},
		{"id": 2, "title": "Neuromancer"},
	}))

	// 写入的是{"record":[...]}外层结构
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(*stored, &doc))
	require.Contains(t, doc, "record")

	records, err := c.GetData(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dune", String(records[0], "title"))
}

// TestJSONBinClient_ServerError 测试后端异常映射为存储不可用
func TestJSONBinClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewJSONBinClient(srv.URL, "test-key", srv.Client())

	_, err := c.GetData(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeStorageUnavailable, appErr.Code)
}

// TestJSONBinClient_NetworkError 测试网络错误映射为存储不可用
func TestJSONBinClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立刻关掉,模拟不可达

	c := NewJSONBinClient(srv.URL, "test-key", &http.Client{})

	_, err := c.GetData(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeStorageUnavailable, appErr.Code)

	err = c.SaveData(context.Background(), []Record{{"id": 1}})
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeStorageUnavailable, appErr.Code)
}
