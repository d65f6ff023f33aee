package storage

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// TestNewClient_TypeSelection 测试按配置选择后端类型
func TestNewClient_TypeSelection(t *testing.T) {
	t.Run("memory后端", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "memory"

		client, err := NewClient(cfg, Deps{})
		require.NoError(t, err)
		assert.IsType(t, &MemoryClient{}, client)
	})

	t.Run("file后端", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "file"
		cfg.Storage.FilePath = filepath.Join(t.TempDir(), "books.json")

		client, err := NewClient(cfg, Deps{})
		require.NoError(t, err)
		assert.IsType(t, &FileClient{}, client)
	})

	t.Run("jsonbin后端", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "jsonbin"
		cfg.Storage.JSONBin.URL = "https://api.jsonbin.io/v3/b/abc"
		cfg.Storage.JSONBin.APIKey = "key"

		client, err := NewClient(cfg, Deps{HTTPClient: &http.Client{}})
		require.NoError(t, err)
		assert.IsType(t, &JSONBinClient{}, client)
	})

	t.Run("未知类型报错", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "cassandra"

		_, err := NewClient(cfg, Deps{})
		assert.Error(t, err)
	})
}

// TestNewClient_MissingDeps 测试缺少必需依赖时的失败
func TestNewClient_MissingDeps(t *testing.T) {
	t.Run("jsonbin缺少配置", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "jsonbin"

		_, err := NewClient(cfg, Deps{HTTPClient: &http.Client{}})
		assert.Error(t, err)
	})

	t.Run("jsonbin缺少HTTP客户端", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "jsonbin"
		cfg.Storage.JSONBin.URL = "https://api.jsonbin.io/v3/b/abc"
		cfg.Storage.JSONBin.APIKey = "key"

		_, err := NewClient(cfg, Deps{})
		assert.Error(t, err)
	})

	t.Run("redis缺少连接", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "redis"

		_, err := NewClient(cfg, Deps{})
		assert.Error(t, err)
	})

	t.Run("mysql缺少连接", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Type = "mysql"

		_, err := NewClient(cfg, Deps{})
		assert.Error(t, err)
	})
}
