// Package storage 定义统一的存储客户端抽象及其各种后端实现
//
// 设计说明：
// 1. 所有后端都只暴露两个操作：读取整个集合、整体替换整个集合
// 2. 选择"整集合替换"而不是单记录CRUD，是为了让接口对后端完全无感：
//    平面文件做不了局部更新，但任何后端都能做整体读写
// 3. 代价是O(n)写入——目录级数据量下完全可接受，这不是高写入吞吐的存储
// 4. 后端无数据时GetData返回空集合而不是错误；后端不可达才返回错误
package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Record 后端原生的无类型记录
// 设计说明：
// 1. 无类型边界只存在于存储接口上（为了后端无关性）
// 2. 越过仓储层边界后立即转换为强类型的领域实体
type Record map[string]interface{}

// Client 存储客户端统一契约
// 各实现的差异仅在持久性与一致性：
//   - memory: 进程生命周期，最后写入者获胜
//   - file:   本地JSON文档，无跨进程锁
//   - jsonbin: 外部单文档存储，整个集合序列化为一个JSON文档
//   - redis:  单个key存放整个集合的JSON，最后写入者获胜
//   - mysql:  单表一行一条记录，SaveData在一个事务内删全表+批量插入
type Client interface {
	// GetData 读取整个集合
	// 后端不可达返回ErrStorageUnavailable；可达但无数据返回空切片
	GetData(ctx context.Context) ([]Record, error)

	// SaveData 用给定集合原子地替换整个集合
	// 不允许出现新旧记录混杂的中间状态
	SaveData(ctx context.Context, records []Record) error
}

// =========================================
// Record字段提取辅助函数
// =========================================
// JSON反序列化后数字变成float64、时间变成RFC3339字符串，
// 而memory/mysql后端保留原生类型，这里统一兜住两种形态。

// String 提取字符串字段，缺失或类型不符返回空串
func String(r Record, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int 提取整数字段，兼容int/int64/uint/float64/json.Number
func Int(r Record, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}

// Time 提取时间字段，兼容time.Time与RFC3339字符串
func Time(r Record, key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

// Strings 提取字符串列表字段（subjects）
func Strings(r Record, key string) []string {
	switch v := r[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
