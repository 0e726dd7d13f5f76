package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/founderfit/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "deepseek":
		base, err = NewDeepSeekProvider(cfg.DeepSeek)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewEchoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv resolves configuration from FOUNDERFIT_* variables,
// falling back to well-known API key variables. It returns (nil, nil) when
// no provider is configured, so callers can run without advice.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, nil
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
