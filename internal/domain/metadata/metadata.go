// Package metadata 提供图书元数据的尽力而为查询
//
// 设计说明:
// 1. 外部元数据能力被当作黑盒：给定书名+作者，返回零或多个候选记录
// 2. 这条路径的任何失败都不允许搞挂写路径——查不到就返回空元数据
// 3. 候选记录的内部解析逻辑属于具体Client实现，不在本包范围内
package metadata

import (
	"context"
	"fmt"
	"log"
)

// DescriptionMaxLen 描述字段的最大长度，超出部分截断
const DescriptionMaxLen = 2000

// Candidate 外部服务返回的候选元数据记录
type Candidate struct {
	Title       string   // 书名
	Author      string   // 作者（多作者逗号连接）
	ISBN        string   // 首选ISBN
	Description string   // 描述
	Subjects    []string // 主题列表
	CoverID     int      // 服务商私有的封面标识（Open Library的cover_i）
}

// Client 外部元数据能力接口
// 失败必须与"无结果"可区分：无结果返回空切片+nil错误
type Client interface {
	SearchBook(ctx context.Context, title, author string) ([]Candidate, error)
}

// Metadata 一次查询的最终产物
// 空元数据哨兵值：所有字段为零值，表示"没查到，但这不是错误"
type Metadata struct {
	CoverURL    string
	Description string
	Subjects    []string
	ISBN        string
}

// Empty 判断是否为空元数据哨兵
func (m Metadata) Empty() bool {
	return m.CoverURL == "" && m.Description == "" && len(m.Subjects) == 0 && m.ISBN == ""
}

// Service 元数据查询服务
type Service struct {
	client Client
}

// NewService 创建元数据服务
func NewService(client Client) *Service {
	return &Service{client: client}
}

// GetBookMetadata 查询图书元数据
// 流程:
// 1. 调用外部能力搜索候选，取第一条
// 2. 封面URL推导优先级：有ISBN用ISBN生成 → 有封面标识用标识生成 → 没有
// 3. 描述截断到2000字符
// 无候选时返回空元数据哨兵而不是错误；外部能力失败则原样返回错误，
// 由调用方（图书服务）决定吞掉它
func (s *Service) GetBookMetadata(ctx context.Context, title, author string) (Metadata, error) {
	log.Printf("[metadata] getting metadata for %q by %q", title, author)

	candidates, err := s.client.SearchBook(ctx, title, author)
	if err != nil {
		return Metadata{}, err
	}

	if len(candidates) == 0 {
		log.Printf("[metadata] no candidates found for %q by %q", title, author)
		return Metadata{}, nil
	}

	best := candidates[0]

	// 封面URL推导：ISBN优先于服务商封面标识
	coverURL := ""
	if best.ISBN != "" {
		coverURL = fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", best.ISBN)
	} else if best.CoverID != 0 {
		coverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", best.CoverID)
	}

	// 按字符截断,不能把多字节字符切到一半
	description := best.Description
	if runes := []rune(description); len(runes) > DescriptionMaxLen {
		description = string(runes[:DescriptionMaxLen])
	}

	return Metadata{
		CoverURL:    coverURL,
		Description: description,
		Subjects:    best.Subjects,
		ISBN:        best.ISBN,
	}, nil
}
