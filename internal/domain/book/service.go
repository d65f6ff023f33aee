package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/metadata"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// MetadataProvider 元数据补全能力
// 由domain/metadata.Service实现；为nil时服务不做任何补全
type MetadataProvider interface {
	GetBookMetadata(ctx context.Context, title, author string) (metadata.Metadata, error)
}

// EventPublisher 图书生命周期事件发布能力
// 发布是尽力而为的：失败只记日志，不影响写路径结果
type EventPublisher interface {
	Publish(ctx context.Context, event mq.Event) error
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验（重复检查、年份范围）与元数据补全编排
// 2. 不依赖具体的Repository实现（依赖倒置）
// 3. 校验与重复检查都发生在任何写入之前（快速失败，不留半成品状态）
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - (书名, 作者)组合不能与现有图书重复（大小写不敏感）
	// - 出版年份必须在[1400, 当前UTC年份]之间
	// - 状态缺省为available，时间戳由服务端设置
	// - 配置了元数据能力且书名作者都非空时尝试补全，补全失败不影响创建
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id int) (*Book, error)

	// UpdateBook 部分更新图书（PATCH语义）
	// 只应用补丁中提供的字段，未提供的字段保持不变；UpdatedAt总是刷新
	UpdateBook(ctx context.Context, id int, patch UpdatePatch) (*Book, error)

	// DeleteBook 删除图书
	// 先确认存在再删除，不存在返回ErrBookNotFound
	DeleteBook(ctx context.Context, id int) error

	// ListBooks 按过滤器分页查询，返回(当前页, 过滤后总数)
	ListBooks(ctx context.Context, filters Filters) ([]*Book, int, error)
}

// service 领域服务实现
type service struct {
	repo     Repository
	enricher MetadataProvider // 可选
	events   EventPublisher   // 可选
}

// NewService 创建图书领域服务
// enricher/events传nil表示关闭对应能力
func NewService(repo Repository, enricher MetadataProvider, events EventPublisher) Service {
	return &service{
		repo:     repo,
		enricher: enricher,
		events:   events,
	}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. 输入与业务规则校验（发生在任何写入之前）
	if err := s.validateCreation(ctx, b); err != nil {
		return nil, err
	}

	// 2. 填充服务端字段
	if b.Status == "" {
		b.Status = StatusAvailable
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	// 3. 元数据补全（尽力而为）
	if s.enricher != nil && b.Title != "" && b.Author != "" {
		s.enrich(ctx, b)
	}

	// 4. 持久化
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	// 5. 发布事件（尽力而为，失败不影响结果）
	s.publish(ctx, "book.created", created)

	log.Printf("[book] created book %d: %q by %q", created.ID, created.Title, created.Author)
	return created, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id int) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id int, patch UpdatePatch) (*Book, error) {
	// 1. 加载现有实体
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 补丁字段校验
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	// 3. 应用补丁（只覆盖提供的字段，刷新UpdatedAt）
	existing.Apply(patch)

	// 4. 持久化（整体替换记录，保留ID）
	return s.repo.Update(ctx, id, existing)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id int) error {
	// 先确认存在，避免把"不存在"误报成删除成功
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, "book.deleted", existing)

	log.Printf("[book] deleted book %d", id)
	return nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, filters Filters) ([]*Book, int, error) {
	filters.Normalize()

	books, err := s.repo.GetAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountTotal(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// =========================================
// 辅助函数：业务规则校验与补全
// =========================================

// validateCreation 创建前校验
// 已知限制：重复检查与后续写入之间没有并发保护，两个并发创建
// 可能同时通过检查（check-then-act竞态）。mysql后端的唯一索引会兜底，
// 其余后端以最后写入者获胜的语义运行。
func (s *service) validateCreation(ctx context.Context, b *Book) error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.Author == "" {
		return ErrEmptyAuthor
	}
	if b.AmountOfPages <= 0 {
		return ErrInvalidPages
	}
	if b.Status != "" && !b.Status.Valid() {
		return ErrInvalidStatus
	}

	// 出版年份范围：[1400, 当前UTC年份]
	currentYear := time.Now().UTC().Year()
	if b.YearOfReleasing > currentYear {
		return ErrYearInFuture
	}
	if b.YearOfReleasing < 1400 {
		return ErrYearTooEarly
	}

	// 重复检查：用子串过滤缩小候选集，再做大小写不敏感的精确比对
	candidates, err := s.repo.GetAll(ctx, Filters{
		Title:  b.Title,
		Author: b.Author,
		Offset: 0,
		Limit:  MaxLimit,
	})
	if err != nil {
		return err
	}

	for _, existing := range candidates {
		if existing.SameTitleAndAuthor(b.Title, b.Author) {
			return ErrBookDuplicate
		}
	}

	return nil
}

// enrich 用外部元数据补全实体
// 补全规则:
// 1. cover_url/description/isbn只在实体尚无值时填入（补全绝不覆盖显式输入）
// 2. subjects只要补全返回了非空列表就整体替换
// 3. 任何失败都被吞掉（记日志），写路径照常继续
func (s *service) enrich(ctx context.Context, b *Book) {
	meta, err := s.enricher.GetBookMetadata(ctx, b.Title, b.Author)
	if err != nil {
		log.Printf("[book] metadata enrichment failed for %q: %v", b.Title, err)
		return
	}

	if meta.Empty() {
		return
	}

	if b.CoverURL == "" && meta.CoverURL != "" {
		b.CoverURL = meta.CoverURL
	}
	if b.Description == "" && meta.Description != "" {
		b.Description = meta.Description
	}
	if b.ISBN == "" && meta.ISBN != "" {
		b.ISBN = meta.ISBN
	}
	if len(meta.Subjects) > 0 {
		b.Subjects = meta.Subjects
	}

	log.Printf("[book] enriched %q with metadata", b.Title)
}

// publish 尽力而为地发布图书事件
func (s *service) publish(ctx context.Context, eventType string, b *Book) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, mq.NewEvent(eventType, eventPayload(b))); err != nil {
		log.Printf("[book] failed to publish %s event for book %d: %v", eventType, b.ID, err)
	}
}

// eventPayload 事件只携带标识性字段，不整本书外送
func eventPayload(b *Book) map[string]interface{} {
	return map[string]interface{}{
		"id":     b.ID,
		"title":  b.Title,
		"author": b.Author,
		"status": string(b.Status),
	}
}
