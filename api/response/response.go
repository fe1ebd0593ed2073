package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int    `json:"code"` // 0:成功, -1:失败
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Accepted 请求已受理，结果通过会话状态轮询
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, Response{
		Code: 0,
		Msg:  "accepted",
		Data: data,
	})
}

// Fail 业务失败，HTTP 状态码仍为 200
func Fail(c *gin.Context, msg string) {
	FailWithData(c, msg, nil)
}

func FailWithData(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Response{
		Code: -1,
		Msg:  msg,
		Data: data,
	})
}

// Abort 协议层错误 (未登录、冲突等)，带 HTTP 状态码并中止后续 handler
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Code: -1,
		Msg:  msg,
	})
}
