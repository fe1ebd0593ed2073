package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contractai/pkg/logger"
	"contractai/types"
	"contractai/vars"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Operation 调用类型，用于日志和错误文案
type Operation string

const (
	OpQuery Operation = "answer_question"
	OpDraft Operation = "draft_contract"
)

// ErrGenerationFailed 所有生成失败都能用 errors.Is 判断
var ErrGenerationFailed = errors.New("generation failed")

var errEmptyResponse = errors.New("model returned an empty response")

// Failure 归一化后的失败结果，Error() 只返回通用文案
// 原始错误只进日志，不对外暴露 (故意不实现 Unwrap)
type Failure struct {
	Op      Operation
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Is(target error) bool {
	return target == ErrGenerationFailed
}

// Client 无状态，每次调用互不影响
type Client struct {
	chatModel model.BaseChatModel
	timeout   time.Duration
}

// NewClient timeout<=0 时不设超时
func NewClient(chatModel model.BaseChatModel, timeout time.Duration) *Client {
	return &Client{
		chatModel: chatModel,
		timeout:   timeout,
	}
}

// AnswerQuestion 合同问答，返回模型原文 (包括 markdown 标记)
func (c *Client) AnswerQuestion(ctx context.Context, contractText, question string) (string, error) {
	prompt, err := BuildQueryPrompt(contractText, question)
	if err != nil {
		return "", c.fail(ctx, OpQuery, err)
	}
	return c.generate(ctx, OpQuery, prompt)
}

// DraftContract 生成合同草稿
func (c *Client) DraftContract(ctx context.Context, details types.ContractDetails) (string, error) {
	prompt, err := BuildDraftPrompt(details)
	if err != nil {
		return "", c.fail(ctx, OpDraft, err)
	}
	return c.generate(ctx, OpDraft, prompt)
}

func (c *Client) generate(ctx context.Context, op Operation, prompt string) (text string, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// 第三方 SDK panic 也要收敛成失败结果
	defer func() {
		if r := recover(); r != nil {
			text, err = "", c.fail(ctx, op, fmt.Errorf("panic: %v", r))
		}
	}()

	start := time.Now()
	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", c.fail(ctx, op, err)
	}
	if resp == nil || resp.Content == "" {
		return "", c.fail(ctx, op, errEmptyResponse)
	}

	logger.Debug(ctx, "generation completed", "op", op, "latency_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(prompt), "response_chars", len(resp.Content))
	return resp.Content, nil
}

func (c *Client) fail(ctx context.Context, op Operation, cause error) error {
	logger.Error(ctx, "generation failed", "op", op, "error", cause)
	msg := vars.MSG_QUERY_FAILED
	if op == OpDraft {
		msg = vars.MSG_DRAFT_FAILED
	}
	return &Failure{Op: op, Message: msg}
}
