package storage

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// Deps 工厂的后端连接依赖
// 设计说明：
// 1. 连接由main按需创建后注入，工厂不持有任何全局状态
// 2. 只有被选中的后端对应的依赖才是必需的
type Deps struct {
	DB         *gorm.DB      // mysql后端必需
	Redis      *redis.Client // redis后端必需
	HTTPClient *http.Client  // jsonbin后端必需（进程级共享连接池）
}

// NewClient 根据配置选择并构造存储客户端
// 选择键：storage.type ∈ {memory, file, jsonbin, redis, mysql}
// 后端特有的逻辑到此为止，仓储层与领域层对具体后端完全无感
func NewClient(cfg *config.Config, deps Deps) (Client, error) {
	log.Printf("[storage] creating storage client of type: %s", cfg.Storage.Type)

	switch cfg.Storage.Type {
	case "memory":
		return NewMemoryClient(), nil

	case "file":
		return NewFileClient(cfg.Storage.FilePath), nil

	case "jsonbin":
		if cfg.Storage.JSONBin.URL == "" || cfg.Storage.JSONBin.APIKey == "" {
			return nil, fmt.Errorf("jsonbin存储缺少url或api_key配置")
		}
		if deps.HTTPClient == nil {
			return nil, fmt.Errorf("jsonbin存储需要注入HTTP客户端")
		}
		return NewJSONBinClient(cfg.Storage.JSONBin.URL, cfg.Storage.JSONBin.APIKey, deps.HTTPClient), nil

	case "redis":
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis存储需要注入Redis连接")
		}
		return NewRedisClient(deps.Redis, cfg.Storage.RedisKey), nil

	case "mysql":
		if deps.DB == nil {
			return nil, fmt.Errorf("mysql存储需要注入数据库连接")
		}
		return NewMySQLClient(deps.DB), nil

	default:
		return nil, fmt.Errorf("未知的存储类型: %s", cfg.Storage.Type)
	}
}

// NewRedisConn 创建Redis连接
// 设计说明：配置连接池与超时参数，启动时Ping确认可达
func NewRedisConn(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Println("✓ Redis连接成功")
	return client, nil
}
