package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/notedrop/notedrop/internal/logger"
)

// LoggerMiddleware 请求日志中间件
// 为每个请求生成追踪ID并记录完整的请求生命周期
type LoggerMiddleware struct {
	// skipPaths 不记录日志的路径
	skipPaths map[string]struct{}
}

// NewLoggerMiddleware 创建日志中间件实例
func NewLoggerMiddleware() *LoggerMiddleware {
	return &LoggerMiddleware{
		skipPaths: map[string]struct{}{
			"/health":      {},
			"/favicon.ico": {},
		},
	}
}

// RequestLogger 记录请求日志
// 记录方法、路径、状态码、耗时、客户端信息和追踪ID
func (m *LoggerMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := m.skipPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		start := time.Now()
		traceID := uuid.NewString()
		c.Set("trace_id", traceID)

		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"trace_id":   traceID,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"raw_query":  rawQuery,
			"user_agent": c.Request.UserAgent(),
			"body_size":  c.Writer.Size(),
		})
		if errs := c.Errors.String(); errs != "" {
			entry = entry.WithField("errors", errs)
		}

		switch {
		case status >= 500:
			entry.Error("HTTP Request")
		case status >= 400:
			entry.Warn("HTTP Request")
		default:
			entry.Info("HTTP Request")
		}
	}
}
