package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"contractai/api/middleware"
	"contractai/api/response"
	"contractai/pkg/logger"
	"contractai/service"
	"contractai/types"
	"contractai/vars"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct{}

func NewContractHandler() *ContractHandler {
	return &ContractHandler{}
}

type SelectRequest struct {
	ContractID string `json:"contract_id" binding:"required"`
}

// Upload 上传合同接口，支持一次多个文件 (字段名 file)
func (h *ContractHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	form, err := c.MultipartForm()
	if err != nil {
		logger.Warn(ctx, "parse multipart form failed", "error", err)
		response.Fail(c, vars.MSG_NO_FILE)
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		// 没有文件也走一次校验，让上传页进入 failed
		_, err := sess.AddContract(ctx, service.FileInput{})
		writeError(c, err)
		return
	}

	var added []*types.Contract
	var errorFiles []string
	for _, file := range files {
		contract, err := sess.AddContract(ctx, fileInput(file))
		if err != nil {
			var verr *service.ValidationError
			if !errors.As(err, &verr) {
				writeError(c, err)
				return
			}
			logger.Warn(ctx, "upload rejected", "file", file.Filename, "error", err)
			errorFiles = append(errorFiles, file.Filename)
			continue
		}
		added = append(added, contract)
	}

	if len(added) == 0 {
		response.FailWithData(c, fmt.Sprintf("所有文件处理失败: %v", errorFiles), gin.H{"fail_files": errorFiles})
		return
	}

	response.Success(c, gin.H{
		"contracts":   added,
		"total_count": len(added),
		"fail_files":  errorFiles,
	})
}

func fileInput(file *multipart.FileHeader) service.FileInput {
	return service.FileInput{
		Name: file.Filename,
		Size: file.Size,
		Open: func() (io.ReadCloser, error) {
			return file.Open()
		},
	}
}

// List 合同列表，按上传顺序；keyword 按文件名过滤
func (h *ContractHandler) List(c *gin.Context) {
	contracts := middleware.GetSession(c).Contracts(c.Query("keyword"))
	response.Success(c, gin.H{
		"contracts":   contracts,
		"total_count": len(contracts),
	})
}

func (h *ContractHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "参数错误: contract_id 不能为空")
		return
	}

	sess := middleware.GetSession(c)
	if err := sess.SelectContract(c.Request.Context(), req.ContractID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, sess.Snapshot().Search)
}

// Search 对选中的合同提问；默认立即返回 202，?wait=true 时等结果
func (h *ContractHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug(ctx, "bind search request failed", "error", err)
		writeError(c, sess.RejectInput(ctx, types.ViewSearch, vars.MSG_SELECT_AND_ASK))
		return
	}

	if req.ContractID != "" {
		if err := sess.SelectContract(ctx, req.ContractID); err != nil {
			writeError(c, err)
			return
		}
	}
	if err := sess.SubmitQuery(ctx, req.Question); err != nil {
		writeError(c, err)
		return
	}

	respond(c, sess, types.ViewSearch, func(s service.Snapshot) any { return s.Search })
}

// Generate 生成合同草稿
func (h *ContractHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	var req types.ContractDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug(ctx, "bind draft request failed", "error", err)
		writeError(c, sess.RejectInput(ctx, types.ViewGenerate, vars.MSG_DRAFT_REQUIRED))
		return
	}

	if err := sess.SubmitDraft(ctx, req); err != nil {
		writeError(c, err)
		return
	}

	respond(c, sess, types.ViewGenerate, func(s service.Snapshot) any { return s.Generate })
}

// respond ?wait=true 时只等本页面的请求，客户端断开则按 202 返回当前状态
func respond(c *gin.Context, sess *service.Session, view types.View, pick func(service.Snapshot) any) {
	if c.Query("wait") != "true" {
		response.Accepted(c, pick(sess.Snapshot()))
		return
	}

	if err := sess.Await(c.Request.Context(), view); err != nil {
		logger.Warn(c.Request.Context(), "stop waiting for result", "view", view, "error", err)
		response.Accepted(c, pick(sess.Snapshot()))
		return
	}
	response.Success(c, pick(sess.Snapshot()))
}
