package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir等价于testing.T.Chdir(需要Go 1.24):切换工作目录并在测试结束时恢复
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad(t *testing.T) {
	t.Run("无配置文件时使用默认值", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Storage.Type)
		assert.Equal(t, 10*time.Second, cfg.Storage.JSONBin.Timeout)

		// 默认值必须能生成可用的mysql DSN
		dsn := cfg.Database.DSN()
		assert.Contains(t, dsn, "charset=utf8mb4")
		assert.Contains(t, dsn, "parseTime=true")
		assert.Contains(t, dsn, "loc=Local")
	})

	t.Run("配置文件覆盖默认值", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))

		yaml := `
server:
  port: 9090
storage:
  type: file
  file_path: ./books.json
database:
  host: db.internal
  port: 3307
  user: catalog
  password: secret
  dbname: catalog
  charset: utf8mb4
  parse_time: true
  loc: Asia/Shanghai
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o644))
		chdir(t, dir)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "file", cfg.Storage.Type)

		// loc需要URL编码
		assert.Equal(t,
			"catalog:secret@tcp(db.internal:3307)/catalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
			cfg.Database.DSN())
	})

	t.Run("非法存储类型报错", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"),
			[]byte("storage:\n  type: cassandra\n"), 0o644))
		chdir(t, dir)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("jsonbin缺少必填项报错", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"),
			[]byte("storage:\n  type: jsonbin\n"), 0o644))
		chdir(t, dir)

		_, err := Load()
		assert.Error(t, err)
	})
}
