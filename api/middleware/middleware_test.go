package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contractai/service"
	"contractai/vars"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "existing-request-id-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "existing-request-id-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRecovery(t *testing.T) {
	logs := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), Recovery(), RequestLogger())
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	router.GET("/normal", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/normal?x=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	out := logs.String()
	assert.Contains(t, out, ">>> [PANIC] GET /panic")
	assert.Contains(t, out, ">>> [HTTP] GET /normal")
	assert.Contains(t, out, `query="x=1"`)
	assert.Contains(t, out, "request_id=")
}

func TestSession(t *testing.T) {
	manager := service.NewManager(service.Deps{})
	sess := manager.Create(context.Background())

	router := gin.New()
	router.Use(Session(manager))
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	tests := []struct {
		name   string
		header string
		cookie string
		code   int
	}{
		{name: "header", header: sess.ID(), code: http.StatusOK},
		{name: "cookie", cookie: sess.ID(), code: http.StatusOK},
		{name: "missing", code: http.StatusUnauthorized},
		{name: "unknown", header: "expired", code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(vars.SESSION_HEADER, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: vars.SESSION_COOKIE, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, sess.ID(), w.Body.String())
			}
		})
	}
}
