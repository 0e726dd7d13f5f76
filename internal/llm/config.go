package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "deepseek", "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	DeepSeek   DeepSeekConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

// DeepSeekConfig holds DeepSeek-specific configuration.
type DeepSeekConfig struct {
	APIKey  string
	Model   string // Default: "deepseek-chat"
	BaseURL string // Default: "https://api.deepseek.com"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "deepseek",
		DeepSeek: DeepSeekConfig{
			Model:   defaultDeepSeekModel,
			BaseURL: defaultDeepSeekBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "deepseek/deepseek-chat",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// envOverrides maps FOUNDERFIT_* variables onto config fields.
func envOverrides(cfg *Config) []struct {
	key string
	dst *string
} {
	return []struct {
		key string
		dst *string
	}{
		{"FOUNDERFIT_LLM_PROVIDER", &cfg.Provider},
		{"FOUNDERFIT_DEEPSEEK_API_KEY", &cfg.DeepSeek.APIKey},
		{"FOUNDERFIT_DEEPSEEK_MODEL", &cfg.DeepSeek.Model},
		{"FOUNDERFIT_DEEPSEEK_BASE_URL", &cfg.DeepSeek.BaseURL},
		{"FOUNDERFIT_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"FOUNDERFIT_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"FOUNDERFIT_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"FOUNDERFIT_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"FOUNDERFIT_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"FOUNDERFIT_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"FOUNDERFIT_GEMINI_MODEL", &cfg.Gemini.Model},
		{"FOUNDERFIT_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"FOUNDERFIT_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, o := range envOverrides(&cfg) {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (DeepSeek, Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config
// for the first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("DEEPSEEK_API_KEY"); k != "" {
		cfg.Provider = "deepseek"
		cfg.DeepSeek.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "deepseek":
		key = c.DeepSeek.APIKey
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set FOUNDERFIT_%s_API_KEY)",
			c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}
