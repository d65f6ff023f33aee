package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// RedisClient Redis单key存储
// 设计说明：
// 1. 整个集合序列化为一个JSON数组，存放在一个key之下
// 2. 语义与外部单文档存储一致：读=GET，写=SET整体覆盖，最后写入者获胜
// 3. Key设计：bookcatalog:books（冒号分隔命名空间，便于管理和监控）
type RedisClient struct {
	client *redis.Client
	key    string
}

// NewRedisClient 创建Redis存储
func NewRedisClient(client *redis.Client, key string) *RedisClient {
	return &RedisClient{client: client, key: key}
}

// GetData 从Redis加载集合
// key不存在视为空集合，连接失败才是错误
func (c *RedisClient) GetData(ctx context.Context) ([]Record, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Record{}, nil
		}
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "读取Redis失败")
	}

	if raw == "" {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "解析Redis数据失败")
	}

	log.Printf("[storage] loaded %d records from redis key %s", len(records), c.key)
	return records, nil
}

// SaveData 整体替换Redis中的集合
// 单次SET是原子的，不会出现新旧记录混杂
func (c *RedisClient) SaveData(ctx context.Context, records []Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return apperrors.Wrap(err, "序列化存储数据失败")
	}

	if err := c.client.Set(ctx, c.key, payload, 0).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "写入Redis失败")
	}

	log.Printf("[storage] saved %d records to redis key %s", len(records), c.key)
	return nil
}
