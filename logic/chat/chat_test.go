package chat

import (
	"context"
	"testing"
	"time"

	"contractai/config"
	"contractai/vars"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatModelUnknownProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), config.LLMConfig{Provider: "gemini-native"})
	assert.ErrorContains(t, err, "unknown llm provider")
}

func TestNewChatModelMissingKey(t *testing.T) {
	m, err := NewChatModel(context.Background(), config.LLMConfig{
		Provider: vars.PROVIDER_OPENAI,
		Model:    vars.GEMINI25PRO,
		BaseURL:  vars.GEMINI_OPENAI_URL,
	})
	require.NoError(t, err)
	require.IsType(t, UnavailableModel{}, m)

	_, err = m.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = m.Stream(context.Background(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestNewChatModelProviders(t *testing.T) {
	ctx := context.Background()

	openaiModel, err := NewChatModel(ctx, config.LLMConfig{
		Provider: vars.PROVIDER_OPENAI,
		Model:    "gpt-4o-mini",
		BaseURL:  "http://127.0.0.1:1/v1",
		APIKey:   "test-key",
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	assert.NotNil(t, openaiModel)

	ollamaModel, err := NewChatModel(ctx, config.LLMConfig{
		Provider: vars.PROVIDER_OLLAMA,
		Model:    vars.QWEN3B,
		BaseURL:  vars.OLLAMA_URL,
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	assert.NotNil(t, ollamaModel)
}
