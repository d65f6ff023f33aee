// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP层指标：请求总数、耗时分布、处理中请求数（由中间件打点）
// 2. 存储层指标：get_data/save_data调用次数与失败次数（由仓储打点）
//
// Prometheus抓取流程：
//
//	应用暴露 /metrics 端点 → Prometheus Server定期抓取 → Grafana可视化
//
// 核心指标类型：
// - Counter（计数器）：只增不减（请求总数、错误总数）
// - Gauge（仪表盘）：可增可减的瞬时值（处理中请求数）
// - Histogram（直方图）：观测值分布，自动计算P50/P90/P99（请求耗时）
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal HTTP请求总数（按方法、路径、状态码分组）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时分布（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress *prometheus.GaugeVec

	// StorageOperationsTotal 存储后端操作总数（按变体、操作、结果分组）
	StorageOperationsTotal *prometheus.CounterVec

	// BooksCreatedTotal 创建成功的图书总数
	BooksCreatedTotal prometheus.Counter

	initOnce sync.Once
)

// InitMetrics 初始化并注册所有指标
// 设计说明：
// 1. sync.Once保证重复调用安全（测试中会多次Init）
// 2. 使用默认Registry，promhttp.Handler()直接暴露
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		)

		HTTPRequestDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "endpoint"},
		)

		HTTPRequestsInProgress = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		)

		StorageOperationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storage_operations_total",
				Help: "Total number of storage backend operations",
			},
			[]string{"backend", "operation", "result"},
		)

		BooksCreatedTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "books_created_total",
				Help: "Total number of books created",
			},
		)

		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPRequestsInProgress,
			StorageOperationsTotal,
			BooksCreatedTotal,
		)
	})
}

// IncBooksCreated 图书创建成功打点
// 未初始化时静默跳过（单元测试不强制Init）
func IncBooksCreated() {
	if BooksCreatedTotal == nil {
		return
	}
	BooksCreatedTotal.Inc()
}

// ObserveStorageOperation 存储操作打点
// result取值：ok | error
func ObserveStorageOperation(backend, operation string, err error) {
	if StorageOperationsTotal == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	StorageOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}
