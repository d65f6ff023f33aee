//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire是Google开发的编译期依赖注入工具,在编译期生成组装代码
// 2. 当前依赖链较短,main.go仍然手动组装;本文件声明完整的Provider链,
//    运行 `wire gen ./cmd/api` 即可切换到生成代码
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件）,定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go,包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeHandler()

package main

import (
	"net/http"

	"github.com/google/wire"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/metadata"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖的构造参数需要从Config中提取（如storage.Deps、backend字符串）,
// Wire无法自动推导,需要手动编写Provider

// provideStorageDeps 按存储类型建立外部连接
// 只建立当前后端真正需要的连接,memory/file/jsonbin不碰数据库
func provideStorageDeps(cfg *config.Config) (storage.Deps, error) {
	deps := storage.Deps{
		HTTPClient: &http.Client{Timeout: cfg.Storage.JSONBin.Timeout},
	}

	switch cfg.Storage.Type {
	case "mysql":
		db, err := storage.NewDB(cfg)
		if err != nil {
			return storage.Deps{}, err
		}
		deps.DB = db
	case "redis":
		redisClient, err := storage.NewRedisConn(cfg)
		if err != nil {
			return storage.Deps{}, err
		}
		deps.Redis = redisClient
	}

	return deps, nil
}

// provideBookRepository 创建图书仓储
// persistence.NewBookRepository的backend参数用于指标标签,从配置提取
func provideBookRepository(client storage.Client, cfg *config.Config) *persistence.BookRepository {
	return persistence.NewBookRepository(client, cfg.Storage.Type)
}

// provideMetadataProvider 元数据补全能力（可选）
// 关闭时返回nil,领域服务对nil enricher跳过补全
func provideMetadataProvider(cfg *config.Config, deps storage.Deps) book.MetadataProvider {
	if !cfg.Metadata.Enabled {
		return nil
	}
	return metadata.NewService(openlibrary.NewClient(cfg.Metadata, deps.HTTPClient))
}

// provideEventPublisher 事件发布能力（可选）
// 关闭时返回nil,领域服务对nil publisher跳过发布
func provideEventPublisher(cfg *config.Config) (book.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
}

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,        // 加载配置文件
	provideStorageDeps, // 按配置建立数据库/Redis/HTTP连接
	storage.NewClient,  // 按配置选择存储后端
	provideBookRepository,
	wire.Bind(new(book.Repository), new(*persistence.BookRepository)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideMetadataProvider,
	provideEventPublisher,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// InitializeHandler 声明最终要构造的目标类型
func InitializeHandler() (*handler.BookHandler, error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handler.NewBookHandler,
	)
	return nil, nil
}
