package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 设计说明:
// 1. endpoint维度用路由模板(c.FullPath)而不是真实路径,
//    避免/books/1、/books/2各自成为一个时间序列(基数爆炸)
// 2. /metrics自身不计入,防止抓取行为污染业务指标
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched" // 404等未命中路由的请求归到一个桶里
		}
		method := c.Request.Method

		metrics.HTTPRequestsInProgress.WithLabelValues(method, endpoint).Inc()
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsInProgress.WithLabelValues(method, endpoint).Dec()
		metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
