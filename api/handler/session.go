package handler

import (
	"errors"
	"net/http"

	"contractai/api/middleware"
	"contractai/api/response"
	"contractai/service"
	"contractai/types"
	"contractai/vars"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	manager *service.Manager
}

func NewSessionHandler(manager *service.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

type ViewRequest struct {
	View string `json:"view" binding:"required"`
}

// Login 不校验凭证，请求体被忽略，直接创建会话
func (h *SessionHandler) Login(c *gin.Context) {
	sess := h.manager.Create(c.Request.Context())
	c.SetCookie(vars.SESSION_COOKIE, sess.ID(), 0, "/", "", false, true)
	c.Header(vars.SESSION_HEADER, sess.ID())

	response.Success(c, sess.Snapshot())
}

// State 当前会话快照，前端轮询这个接口刷新页面
func (h *SessionHandler) State(c *gin.Context) {
	response.Success(c, middleware.GetSession(c).Snapshot())
}

func (h *SessionHandler) SwitchView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "参数错误: view 不能为空")
		return
	}
	view, ok := types.ParseView(req.View)
	if !ok {
		response.Fail(c, "unknown view: "+req.View)
		return
	}

	sess := middleware.GetSession(c)
	if err := sess.Navigate(c.Request.Context(), view); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, sess.Snapshot())
}

// writeError 校验错误走业务失败，状态冲突走 409
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Fail(c, verr.Message)
	case errors.Is(err, service.ErrRequestInFlight), errors.Is(err, service.ErrScreenInactive):
		response.Abort(c, http.StatusConflict, err.Error())
	default:
		response.Abort(c, http.StatusInternalServerError, vars.MSG_AI_UNAVAILABLE)
	}
}
