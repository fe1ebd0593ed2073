package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"contractai/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger 每个请求一行，消息是路由模板，方便按接口聚合
// request_id 和 session_id 由 context 带出，不在这里重复
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, "query", q)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		logger.WithContext(ctx).Log(ctx, levelFor(status),
			fmt.Sprintf(">>> [HTTP] %s %s", c.Request.Method, routeOf(c)), attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routeOf 未匹配的路由用原始路径
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}
