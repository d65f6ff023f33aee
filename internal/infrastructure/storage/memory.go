package storage

import (
	"context"
	"log"
)

// MemoryClient 内存存储
// 数据只在进程生命周期内存在，适合测试与原型验证
// 注意：没有并发写保护，最后写入者获胜（与其他后端语义一致）
type MemoryClient struct {
	data []Record
}

// NewMemoryClient 创建内存存储
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// GetData 返回集合的副本
// 返回副本而不是内部切片，防止调用方修改穿透到存储
func (c *MemoryClient) GetData(_ context.Context) ([]Record, error) {
	out := make([]Record, len(c.data))
	copy(out, c.data)
	return out, nil
}

// SaveData 整体替换集合
func (c *MemoryClient) SaveData(_ context.Context, records []Record) error {
	data := make([]Record, len(records))
	copy(data, records)
	c.data = data
	log.Printf("[storage] saved %d records to memory", len(data))
	return nil
}
