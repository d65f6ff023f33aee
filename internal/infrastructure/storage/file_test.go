package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileClient_MissingFile 测试文件不存在时返回空集合
func TestFileClient_MissingFile(t *testing.T) {
	c := NewFileClient(filepath.Join(t.TempDir(), "books.json"))

	records, err := c.GetData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestFileClient_SaveAndReload 测试写入后重新加载
func TestFileClient_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	ctx := context.Background()

	writer := NewFileClient(path)
	require.NoError(t, writer.SaveData(ctx, []Record{
		{"id": 1, "title": "Dune", "subjects": []string{"sci-fi"}},
	}))

	// 新客户端模拟进程重启
	reader := NewFileClient(path)
	records, err := reader.GetData(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// JSON往返后数字是float64、列表是[]interface{},辅助函数负责兜住
	assert.Equal(t, 1, Int(records[0], "id"))
	assert.Equal(t, "Dune", String(records[0], "title"))
	assert.Equal(t, []string{"sci-fi"}, Strings(records[0], "subjects"))
}

// TestFileClient_CorruptFile 测试损坏的文件当作空集合
func TestFileClient_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o644))

	c := NewFileClient(path)
	records, err := c.GetData(context.Background())
	require.NoError(t, err, "损坏的文件不应报错")
	assert.Empty(t, records)
}

// TestFileClient_EmptyFile 测试空文件当作空集合
func TestFileClient_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c := NewFileClient(path)
	records, err := c.GetData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestFileClient_OverwriteSemantics 测试每次写入整体覆盖
func TestFileClient_OverwriteSemantics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	ctx := context.Background()
	c := NewFileClient(path)

	require.NoError(t, c.SaveData(ctx, []Record{{"id": 1}, {"id": 2}, {"id": 3}}))
	require.NoError(t, c.SaveData(ctx, []Record{{"id": 9}}))

	records, err := c.GetData(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 9, Int(records[0], "id"))
}
