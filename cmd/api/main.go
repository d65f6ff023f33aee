package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookcatalog/docs" // swagger文档注册

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/metadata"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// main 主程序入口
// 说明：手动依赖注入（依赖链简单,暂不引入Wire自动生成,见wire.go）
//
// @title        图书目录服务API
// @version      1.0
// @description  可替换存储后端的图书目录管理服务
// @host         localhost:8080
// @BasePath     /api/v1
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 存储后端: %s\n", cfg.Storage.Type)
	fmt.Printf("  - 元数据补全: %v\n", cfg.Metadata.Enabled)

	// 2. 注册自定义校验规则
	if err := validator.Register(); err != nil {
		log.Fatalf("注册校验规则失败: %v", err)
	}

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 按存储类型初始化外部连接
	// 学习要点：只建立当前后端真正需要的连接,memory/file/jsonbin不碰数据库
	deps := storage.Deps{
		// 共享的HTTP客户端,jsonbin与元数据外呼复用同一个连接池
		// 元数据客户端会基于共享Transport另设自己的超时
		HTTPClient: &http.Client{Timeout: cfg.Storage.JSONBin.Timeout},
	}
	switch cfg.Storage.Type {
	case "mysql":
		db, err := storage.NewDB(cfg)
		if err != nil {
			log.Fatalf("初始化数据库失败: %v", err)
		}
		deps.DB = db
	case "redis":
		redisClient, err := storage.NewRedisConn(cfg)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		deps.Redis = redisClient
	}

	// 5. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// StorageClient ← Repository ← Service ← UseCase ← Handler

	// 基础设施层
	storageClient, err := storage.NewClient(cfg, deps)
	if err != nil {
		log.Fatalf("初始化存储后端失败: %v", err)
	}
	bookRepo := persistence.NewBookRepository(storageClient, cfg.Storage.Type)

	// 元数据能力(可选)
	var enricher book.MetadataProvider
	if cfg.Metadata.Enabled {
		olClient := openlibrary.NewClient(cfg.Metadata, deps.HTTPClient)
		enricher = metadata.NewService(olClient)
		fmt.Printf("✓ 元数据补全已开启: %s\n", cfg.Metadata.BaseURL)
	}

	// 事件发布能力(可选)
	var events book.EventPublisher
	if cfg.Events.Enabled {
		publisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatalf("初始化事件发布失败: %v", err)
		}
		defer publisher.Close()
		events = publisher
		fmt.Printf("✓ 事件发布已开启: exchange=%s\n", cfg.Events.Exchange)
	}

	// 领域层
	bookService := book.NewService(bookRepo, enricher, events)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		getBookUseCase,
		listBooksUseCase,
		updateBookUseCase,
		deleteBookUseCase,
	)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// 7. 注册路由
	registerRoutes(r, bookHandler)

	// 8. 启动服务(带优雅停机)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   图书接口: http://localhost%s/api/v1/books\n", addr)
		fmt.Printf("   指标接口: http://localhost%s/metrics\n", addr)
		fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待中断信号,给在途请求10秒的收尾时间
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到停止信号,开始优雅停机...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("优雅停机失败: %v", err)
	}
	log.Println("服务已停止")
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
	}
}
