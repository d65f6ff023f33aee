package book

import (
	"strings"
	"time"
)

// Status 图书状态枚举
type Status string

const (
	StatusAvailable   Status = "available"   // 可借阅
	StatusBorrowed    Status = "borrowed"    // 已借出
	StatusReserved    Status = "reserved"    // 已预约
	StatusMaintenance Status = "maintenance" // 维护中
)

// Valid 判断状态值是否合法
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusReserved, StatusMaintenance:
		return true
	default:
		return false
	}
}

// Book 图书实体(聚合根)
// 设计说明:
// 1. ID在创建时由仓储分配(现有最大ID+1)，分配后不可变
// 2. (Title, Author)组合在集合内大小写不敏感地唯一
// 3. ISBN/CoverURL/Description/Subjects是可选字段，空值表示未设置，
//    可在创建时由外部元数据服务尽力补全
// 4. 时间戳由服务端统一设置(UTC)
type Book struct {
	ID              int
	Title           string    // 书名（非空）
	Author          string    // 作者（非空）
	YearOfReleasing int       // 出版年份
	Genre           string    // 类型
	AmountOfPages   int       // 页数（正整数）
	Status          Status    // 状态
	ISBN            string    // ISBN号（可选）
	CoverURL        string    // 封面图URL（可选，可由元数据补全）
	Description     string    // 图书描述（可选，可由元数据补全）
	Subjects        []string  // 主题列表（有序，可由元数据补全）
	CreatedAt       time.Time // 创建时间
	UpdatedAt       time.Time // 更新时间
}

// NewBook 创建新图书(工厂方法)
// 状态为空时默认available，时间戳设为当前UTC时间
func NewBook(title, author string, year int, genre string, pages int, status Status) *Book {
	if status == "" {
		status = StatusAvailable
	}
	now := time.Now().UTC()
	return &Book{
		Title:           title,
		Author:          author,
		YearOfReleasing: year,
		Genre:           genre,
		AmountOfPages:   pages,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdatePatch 部分更新补丁
// 设计说明:
// 1. nil指针表示"未提供该字段"，与"提供了零值"区分开（PATCH语义）
// 2. 只有被提供的字段才会被应用到实体上，其余字段保持原值
type UpdatePatch struct {
	Title           *string
	Author          *string
	YearOfReleasing *int
	Genre           *string
	AmountOfPages   *int
	Status          *Status
	ISBN            *string
	Description     *string
}

// Apply 将补丁应用到实体，只覆盖被提供的字段
// 无论补丁是否为空，都会刷新UpdatedAt
func (b *Book) Apply(patch UpdatePatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.YearOfReleasing != nil {
		b.YearOfReleasing = *patch.YearOfReleasing
	}
	if patch.Genre != nil {
		b.Genre = *patch.Genre
	}
	if patch.AmountOfPages != nil {
		b.AmountOfPages = *patch.AmountOfPages
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.ISBN != nil {
		b.ISBN = *patch.ISBN
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	b.UpdatedAt = time.Now().UTC()
}

// SameTitleAndAuthor 判断是否与给定(书名,作者)大小写不敏感地相同
// 用于创建前的重复检查
func (b *Book) SameTitleAndAuthor(title, author string) bool {
	return strings.EqualFold(b.Title, title) && strings.EqualFold(b.Author, author)
}
