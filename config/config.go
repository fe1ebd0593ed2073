package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"contractai/vars"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey 供应商需要凭证但未配置
var ErrMissingAPIKey = errors.New("llm api key not configured: set CONTRACTAI_API_KEY or API_KEY")

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Session SessionConfig `mapstructure:"session"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // TUI 模式下的日志文件
}

type LLMConfig struct {
	Provider string        `mapstructure:"provider"` // openai | ollama
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"` // 0 表示不设超时
}

type UploadConfig struct {
	ExtractContent bool  `mapstructure:"extract_content"` // false 时保持占位内容
	MaxSizeMB      int64 `mapstructure:"max_size_mb"`
}

type SessionConfig struct {
	IdleTTL     time.Duration `mapstructure:"idle_ttl"`
	SweepSpec   string        `mapstructure:"sweep_spec"` // 6 段 cron 表达式 (带秒)
	SeedSamples bool          `mapstructure:"seed_samples"`
}

// NeedsAPIKey ollama 本地部署不需要凭证
func (c LLMConfig) NeedsAPIKey() bool {
	return c.Provider != vars.PROVIDER_OLLAMA
}

// MaxUploadBytes 上传上限 (字节)，<=0 表示不限制
func (c UploadConfig) MaxUploadBytes() int64 {
	if c.MaxSizeMB <= 0 {
		return 0
	}
	return c.MaxSizeMB << 20
}

// Load 读取配置：.env -> config.yaml -> CONTRACTAI_* 环境变量
// path 为空时在当前目录和 ./config 下找 config.yaml，找不到就用默认值
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CONTRACTAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 凭证变量不带 LLM_ 段，两种写法都认
	if err := v.BindEnv("llm.api_key", "CONTRACTAI_API_KEY", "CONTRACTAI_LLM_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// 兼容原来的 API_KEY 变量
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = vars.GetEnv("API_KEY", "")
	}
	// 切到 ollama 但仍是 openai 的默认地址/模型时，换成本地默认值
	if cfg.LLM.Provider == vars.PROVIDER_OLLAMA {
		if cfg.LLM.BaseURL == vars.GEMINI_OPENAI_URL {
			cfg.LLM.BaseURL = vars.OLLAMA_URL
		}
		if cfg.LLM.Model == vars.GEMINI25PRO {
			cfg.LLM.Model = vars.QWEN7B
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8081)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "contractai.log")

	v.SetDefault("llm.provider", vars.PROVIDER_OPENAI)
	v.SetDefault("llm.model", vars.GEMINI25PRO)
	v.SetDefault("llm.base_url", vars.GEMINI_OPENAI_URL)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 2*time.Minute)

	v.SetDefault("upload.extract_content", false)
	v.SetDefault("upload.max_size_mb", vars.MAX_UPLOAD_MB)

	v.SetDefault("session.idle_ttl", 2*time.Hour)
	v.SetDefault("session.sweep_spec", "0 */10 * * * *")
	v.SetDefault("session.seed_samples", true)
}

// CheckCredential 启动时调用；返回的错误只用于记录日志，不阻止启动
func (c *Config) CheckCredential() error {
	if c.LLM.NeedsAPIKey() && c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
