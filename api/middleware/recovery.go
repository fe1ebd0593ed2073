package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"contractai/api/response"
	"contractai/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery handler 里的 panic 记一条带堆栈的日志，返回统一信封
// gin 自带的输出关掉，只走 slog
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), ">>> [PANIC] "+c.Request.Method+" "+routeOf(c),
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
		response.Abort(c, http.StatusInternalServerError, "Internal server error")
	})
}
