package chat

import (
	"context"
	"errors"
	"fmt"

	"contractai/config"
	"contractai/vars"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrModelUnavailable 启动时缺少凭证，所有调用都在边界处失败
var ErrModelUnavailable = errors.New("chat model unavailable: missing credential")

// NewChatModel 按配置选择供应商
// 缺少 API Key 不算启动失败，返回一个每次调用都报错的模型；日志由调用方记录
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case vars.PROVIDER_OLLAMA:
		return CreateOllamaChatModel(ctx, cfg.BaseURL, cfg.Model, cfg.Timeout)
	case vars.PROVIDER_OPENAI:
		if cfg.APIKey == "" {
			return UnavailableModel{}, nil
		}
		return CreateOpenAIChatModel(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// UnavailableModel 占位模型
type UnavailableModel struct{}

func (UnavailableModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return nil, ErrModelUnavailable
}

func (UnavailableModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, ErrModelUnavailable
}
