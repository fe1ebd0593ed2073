package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"contractai/config"
	"contractai/logic/chat"
	"contractai/logic/generation"
	"contractai/logic/ingestion/extract"
	"contractai/service"
)

// loadConfig 读取配置；configPath 为空时按默认位置查找
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildDeps 初始化模型和文档解析，组装会话依赖
// 缺少凭证只记录日志，不阻止启动
func buildDeps(ctx context.Context, cfg *config.Config) (service.Deps, error) {
	if err := cfg.CheckCredential(); err != nil {
		slog.Error("configuration problem, generation calls will fail", "provider", cfg.LLM.Provider, "error", err)
	}

	chatModel, err := chat.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return service.Deps{}, err
	}

	var extractor extract.Extractor = extract.Placeholder{}
	if cfg.Upload.ExtractContent {
		e, err := extract.NewDocumentExtractor(ctx)
		if err != nil {
			return service.Deps{}, err
		}
		extractor = e
	}

	slog.Info("dependencies ready",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"timeout", cfg.LLM.Timeout,
		"extract_content", cfg.Upload.ExtractContent,
	)

	return service.Deps{
		Generator:      generation.NewClient(chatModel, cfg.LLM.Timeout),
		Extractor:      extractor,
		MaxUploadBytes: cfg.Upload.MaxUploadBytes(),
		SeedSamples:    cfg.Session.SeedSamples,
	}, nil
}
