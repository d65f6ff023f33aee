package storage

import (
	"context"
	"encoding/json"
	"log"
	"os"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// FileClient 本地JSON文件存储
// 设计说明：
// 1. 每次写入重写整个文件（整集合替换语义的直接体现）
// 2. 没有跨进程文件锁，并发写入者可能互相覆盖
// 3. 文件不存在/为空/内容损坏都视为"还没有数据"，返回空集合
type FileClient struct {
	path string
}

// NewFileClient 创建文件存储
func NewFileClient(path string) *FileClient {
	return &FileClient{path: path}
}

// GetData 从JSON文件加载集合
func (c *FileClient) GetData(_ context.Context) ([]Record, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[storage] file %s not found, returning empty collection", c.path)
			return []Record{}, nil
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "读取存储文件失败")
	}

	if len(content) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(content, &records); err != nil {
		// 损坏的文件当作空集合处理，下一次写入会覆盖它
		log.Printf("[storage] invalid JSON in %s: %v", c.path, err)
		return []Record{}, nil
	}

	log.Printf("[storage] loaded %d records from %s", len(records), c.path)
	return records, nil
}

// SaveData 将集合写入JSON文件（整体覆盖）
func (c *FileClient) SaveData(_ context.Context, records []Record) error {
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "序列化存储数据失败")
	}

	if err := os.WriteFile(c.path, content, 0o644); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "写入存储文件失败")
	}

	log.Printf("[storage] saved %d records to %s", len(records), c.path)
	return nil
}
