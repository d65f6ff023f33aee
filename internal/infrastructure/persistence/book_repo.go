package persistence

import (
	"context"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// BookRepository 图书仓储实现
// 设计说明:
// 1. 建立在统一的storage.Client之上，对所有后端（memory/file/jsonbin/redis/mysql）
//    走同一套"整集合读改写"协议：读出全部记录、内存中变换、写回全部记录
// 2. 过滤、分页、ID分配都在仓储层完成，后端只负责存取字节
// 3. 这种协议换来后端可互换性，代价是写放大；适合中小规模的目录数据
type BookRepository struct {
	client  storage.Client
	backend string // 用于指标维度
}

// NewBookRepository 创建图书仓储
func NewBookRepository(client storage.Client, backend string) *BookRepository {
	return &BookRepository{
		client:  client,
		backend: backend,
	}
}

// GetAll 按过滤器分页查询图书
// 过滤顺序: 书名 -> 作者 -> 状态 -> 流派，全部通过后再做偏移/截断
func (r *BookRepository) GetAll(ctx context.Context, filters book.Filters) ([]*book.Book, error) {
	filters.Normalize()

	books, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := applyFilters(books, filters)
	return paginate(filtered, filters.Offset, filters.Limit), nil
}

// GetByID 根据ID获取图书
func (r *BookRepository) GetByID(ctx context.Context, id int) (*book.Book, error) {
	books, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

// Create 创建图书并分配ID
// ID从当前集合的最大ID+1开始；集合为空时从1开始。
// 删除最大ID的图书后该ID会被下一次创建复用，调用方不应把ID当作永不复用的标识。
func (r *BookRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	books, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, existing := range books {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	b.ID = maxID + 1

	books = append(books, b)
	if err := r.saveAll(ctx, books); err != nil {
		return nil, err
	}
	return b, nil
}

// Update 整体替换指定ID的图书，保留原ID
func (r *BookRepository) Update(ctx context.Context, id int, b *book.Book) (*book.Book, error) {
	books, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i, existing := range books {
		if existing.ID == id {
			b.ID = id
			books[i] = b
			if err := r.saveAll(ctx, books); err != nil {
				return nil, err
			}
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

// Delete 删除指定ID的图书
// 未命中时不触发任何写回，直接返回ErrBookNotFound
func (r *BookRepository) Delete(ctx context.Context, id int) error {
	books, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	remaining := make([]*book.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			remaining = append(remaining, b)
		}
	}

	if len(remaining) == len(books) {
		return book.ErrBookNotFound
	}
	return r.saveAll(ctx, remaining)
}

// CountTotal 统计过滤后的总数（忽略分页参数）
func (r *BookRepository) CountTotal(ctx context.Context, filters book.Filters) (int, error) {
	books, err := r.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(applyFilters(books, filters)), nil
}

// =========================================
// 存取与记录转换
// =========================================

// loadAll 读出整个集合并转换为领域实体
func (r *BookRepository) loadAll(ctx context.Context) ([]*book.Book, error) {
	records, err := r.client.GetData(ctx)
	metrics.ObserveStorageOperation(r.backend, "get_data", err)
	if err != nil {
		return nil, err
	}

	books := make([]*book.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, recordToBook(rec))
	}
	return books, nil
}

// saveAll 把整个集合写回后端
func (r *BookRepository) saveAll(ctx context.Context, books []*book.Book) error {
	records := make([]storage.Record, 0, len(books))
	for _, b := range books {
		records = append(records, bookToRecord(b))
	}

	err := r.client.SaveData(ctx, records)
	metrics.ObserveStorageOperation(r.backend, "save_data", err)
	return err
}

// recordToBook 记录转领域实体
// 缺失或类型不符的字段取零值缺省：字符串为""、数字为0、状态为available
func recordToBook(rec storage.Record) *book.Book {
	b := &book.Book{
		ID:              storage.Int(rec, "id"),
		Title:           storage.String(rec, "title"),
		Author:          storage.String(rec, "author"),
		YearOfReleasing: storage.Int(rec, "year_of_releasing"),
		Genre:           storage.String(rec, "genre"),
		AmountOfPages:   storage.Int(rec, "amount_of_pages"),
		Status:          book.Status(storage.String(rec, "status")),
		ISBN:            storage.String(rec, "isbn"),
		CoverURL:        storage.String(rec, "cover_url"),
		Description:     storage.String(rec, "description"),
		Subjects:        storage.Strings(rec, "subjects"),
		CreatedAt:       storage.Time(rec, "created_at"),
		UpdatedAt:       storage.Time(rec, "updated_at"),
	}
	if b.Status == "" {
		b.Status = book.StatusAvailable
	}
	return b
}

// bookToRecord 领域实体转记录
func bookToRecord(b *book.Book) storage.Record {
	return storage.Record{
		"id":                b.ID,
		"title":             b.Title,
		"author":            b.Author,
		"year_of_releasing": b.YearOfReleasing,
		"genre":             b.Genre,
		"amount_of_pages":   b.AmountOfPages,
		"status":            string(b.Status),
		"isbn":              b.ISBN,
		"cover_url":         b.CoverURL,
		"description":       b.Description,
		"subjects":          b.Subjects,
		"created_at":        b.CreatedAt,
		"updated_at":        b.UpdatedAt,
	}
}

// =========================================
// 过滤与分页
// =========================================

// applyFilters 按固定顺序应用过滤条件
func applyFilters(books []*book.Book, filters book.Filters) []*book.Book {
	result := books

	if filters.Title != "" {
		result = filterBy(result, func(b *book.Book) bool {
			return containsFold(b.Title, filters.Title)
		})
	}
	if filters.Author != "" {
		result = filterBy(result, func(b *book.Book) bool {
			return containsFold(b.Author, filters.Author)
		})
	}
	if filters.Status != "" {
		result = filterBy(result, func(b *book.Book) bool {
			return b.Status == filters.Status
		})
	}
	if filters.Genre != "" {
		result = filterBy(result, func(b *book.Book) bool {
			return containsFold(b.Genre, filters.Genre)
		})
	}

	return result
}

func filterBy(books []*book.Book, keep func(*book.Book) bool) []*book.Book {
	result := make([]*book.Book, 0, len(books))
	for _, b := range books {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}

// containsFold 大小写不敏感的子串匹配
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// paginate 偏移/截断分页
func paginate(books []*book.Book, offset, limit int) []*book.Book {
	if offset >= len(books) {
		return []*book.Book{}
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end]
}
