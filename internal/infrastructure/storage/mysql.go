package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate，生产环境应使用专门的迁移工具）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := db.AutoMigrate(&BookModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，domain层的实体不依赖GORM
// 2. (title, author)有唯一索引兜底防重复；isbn用指针列，空值存NULL避免唯一索引冲突
// 3. 复合索引优化列表过滤：(title,author)、(status,genre)、(year,genre)
// 4. subjects序列化为JSON文本存储（列表字段，目录级数据量下无需拆表）
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"uniqueIndex:uidx_title_author;index:idx_title_author;size:500;not null;comment:书名"`
	Author          string    `gorm:"uniqueIndex:uidx_title_author;index:idx_title_author;size:200;not null;comment:作者"`
	YearOfReleasing int       `gorm:"index:idx_year_genre;comment:出版年份"`
	Genre           string    `gorm:"index:idx_status_genre,priority:2;index:idx_year_genre,priority:2;size:100;comment:类型"`
	AmountOfPages   int       `gorm:"comment:页数"`
	Status          string    `gorm:"index:idx_status_genre,priority:1;size:20;not null;default:available;comment:状态"`
	ISBN            *string   `gorm:"uniqueIndex;size:20;comment:ISBN号"`
	CoverURL        string    `gorm:"size:500;comment:封面图片URL"`
	Description     string    `gorm:"type:text;comment:图书描述"`
	Subjects        string    `gorm:"type:text;comment:主题列表(JSON)"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MySQLClient 关系型存储
// 设计说明:
// 1. 实现与其他后端完全相同的整集合读写契约
// 2. SaveData = 一个事务内删全表+批量插入，四种后端中一致性最强
// 3. 记录的ID由仓储层分配，这里原样写入（不使用自增）
type MySQLClient struct {
	db *gorm.DB
}

// NewMySQLClient 创建关系型存储
func NewMySQLClient(db *gorm.DB) *MySQLClient {
	return &MySQLClient{db: db}
}

// GetData 读取全表，按ID排序保证顺序稳定
func (c *MySQLClient) GetData(ctx context.Context) ([]Record, error) {
	var models []BookModel
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "查询图书表失败")
	}

	records := make([]Record, len(models))
	for i := range models {
		records[i] = modelToRecord(&models[i])
	}

	log.Printf("[storage] loaded %d records from mysql", len(records))
	return records, nil
}

// SaveData 整体替换全表
// 删除与插入在同一个事务内提交，失败时回滚，不会留下新旧混杂的状态
func (c *MySQLClient) SaveData(ctx context.Context, records []Record) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&BookModel{}).Error; err != nil {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		models := make([]BookModel, len(records))
		for i, r := range records {
			models[i] = recordToModel(r)
		}
		return tx.Create(&models).Error
	})
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageUnavailable, err, "写入图书表失败")
	}

	log.Printf("[storage] saved %d records to mysql", len(records))
	return nil
}

// =========================================
// 辅助函数：Record ↔ GORM模型转换
// =========================================

func modelToRecord(m *BookModel) Record {
	isbn := ""
	if m.ISBN != nil {
		isbn = *m.ISBN
	}

	var subjects []string
	if m.Subjects != "" {
		// 损坏的subjects列当作空列表，不让单条脏数据拖垮整次读取
		_ = json.Unmarshal([]byte(m.Subjects), &subjects)
	}

	return Record{
		"id":                int(m.ID),
		"title":             m.Title,
		"author":            m.Author,
		"year_of_releasing": m.YearOfReleasing,
		"genre":             m.Genre,
		"amount_of_pages":   m.AmountOfPages,
		"status":            m.Status,
		"isbn":              isbn,
		"cover_url":         m.CoverURL,
		"description":       m.Description,
		"subjects":          subjects,
		"created_at":        m.CreatedAt,
		"updated_at":        m.UpdatedAt,
	}
}

func recordToModel(r Record) BookModel {
	var isbn *string
	if v := String(r, "isbn"); v != "" {
		isbn = &v
	}

	subjects := ""
	if list := Strings(r, "subjects"); len(list) > 0 {
		if raw, err := json.Marshal(list); err == nil {
			subjects = string(raw)
		}
	}

	return BookModel{
		ID:              uint(Int(r, "id")),
		Title:           String(r, "title"),
		Author:          String(r, "author"),
		YearOfReleasing: Int(r, "year_of_releasing"),
		Genre:           String(r, "genre"),
		AmountOfPages:   Int(r, "amount_of_pages"),
		Status:          String(r, "status"),
		ISBN:            isbn,
		CoverURL:        String(r, "cover_url"),
		Description:     String(r, "description"),
		Subjects:        subjects,
		CreatedAt:       Time(r, "created_at"),
		UpdatedAt:       Time(r, "updated_at"),
	}
}
