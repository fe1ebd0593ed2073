package middleware

import (
	"net/http"

	"contractai/api/response"
	"contractai/pkg/logger"
	"contractai/service"
	"contractai/vars"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session 从 Header 或 Cookie 取会话 ID，找不到返回 401 (需先登录)
func Session(manager *service.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(vars.SESSION_HEADER)
		if id == "" {
			id, _ = c.Cookie(vars.SESSION_COOKIE)
		}
		if id == "" {
			response.Abort(c, http.StatusUnauthorized, "Please log in first.")
			return
		}

		sess, ok := manager.Get(id)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Session expired, please log in again.")
			return
		}

		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(logger.WithSession(c.Request.Context(), id))
		c.Next()
	}
}

// GetSession 取当前请求的会话，只能在 Session 中间件之后调用
func GetSession(c *gin.Context) *service.Session {
	if v, exists := c.Get(sessionKey); exists {
		return v.(*service.Session)
	}
	return nil
}

func GetSessionID(c *gin.Context) string {
	if s := GetSession(c); s != nil {
		return s.ID()
	}
	return ""
}
