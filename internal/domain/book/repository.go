package book

import (
	"context"
)

// 分页参数边界
const (
	DefaultLimit = 20  // 缺省每页数量
	MaxLimit     = 100 // 每页数量上限
)

// Filters 图书查询过滤器
// 设计说明:
// 1. Title/Author/Genre是大小写不敏感的子串匹配，Status是精确匹配
// 2. 多个过滤条件之间是AND关系
// 3. 纯查询描述符，没有持久化身份
type Filters struct {
	Title  string // 书名子串（大小写不敏感contains）
	Author string // 作者子串（大小写不敏感contains）
	Status Status // 状态精确匹配（空值表示不过滤）
	Genre  string // 类型子串（大小写不敏感contains）
	Offset int    // 偏移量（>=0）
	Limit  int    // 每页数量（1..100，默认20）
}

// Normalize 参数默认值与范围限制
func (f *Filters) Normalize() {
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层基于存储客户端实现
// 2. 过滤/分页/ID分配逻辑在仓储实现中只写一次，所有存储后端共享
// 3. 便于Mock测试，不依赖具体后端
type Repository interface {
	// GetAll 按过滤器查询图书，应用offset/limit分页
	// offset超出过滤后长度时返回空切片
	GetAll(ctx context.Context, filters Filters) ([]*Book, error)

	// GetByID 根据ID查找图书，不存在返回ErrBookNotFound
	GetByID(ctx context.Context, id int) (*Book, error)

	// Create 创建图书：分配ID=(现有最大ID,空集合为0)+1，追加后整体写回
	// 注意：ID不是严格递增计数器，删除后续写入可能复用已释放的ID
	Create(ctx context.Context, b *Book) (*Book, error)

	// Update 整体替换指定ID的记录（保留ID），不存在返回ErrBookNotFound
	Update(ctx context.Context, id int, b *Book) (*Book, error)

	// Delete 删除指定ID的记录
	// 集合没有收缩时不触发后端写入，直接返回ErrBookNotFound
	Delete(ctx context.Context, id int) error

	// CountTotal 与GetAll相同的过滤管道，返回分页前的总数
	CountTotal(ctx context.Context, filters Filters) (int, error)
}
