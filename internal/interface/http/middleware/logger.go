package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
// 设计说明:
// 1. 为每个请求生成唯一的请求ID并回写到响应头,便于排查问题
// 2. 记录方法、路径、状态码、耗时与客户端IP
// 3. 不记录请求体与敏感头,避免泄露与性能问题
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 生成请求ID
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		// 2. 处理请求
		c.Next()

		// 3. 记录请求信息
		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = " | " + c.Errors.String()
		}

		log.Printf("[HTTP] %s | %3d | %13v | %15s | %-7s %s%s",
			requestID[:8],
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 慢请求单独告警
		if latency > 3*time.Second {
			log.Printf("[WARN] slow request: %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
