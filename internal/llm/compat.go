package llm

import "fmt"

const (
	defaultDeepSeekBaseURL   = "https://api.deepseek.com"
	defaultDeepSeekModel     = "deepseek-chat"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// deepseekModels maps friendly names to DeepSeek model IDs.
var deepseekModels = map[string]string{
	"deepseek":    "deepseek-chat",
	"deepseek-v3": "deepseek-chat",
	"deepseek-r1": "deepseek-reasoner",
}

// DeepSeekProvider targets the DeepSeek chat API, which speaks the OpenAI
// wire protocol.
type DeepSeekProvider struct {
	*OpenAIProvider
}

// NewDeepSeekProvider creates a provider targeting the DeepSeek API.
func NewDeepSeekProvider(cfg DeepSeekConfig) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(withDefault(cfg.Model, defaultDeepSeekModel), deepseekModels),
		BaseURL: withDefault(cfg.BaseURL, defaultDeepSeekBaseURL),
	})
	if err != nil {
		return nil, err
	}
	inner.jsonObjectOnly = true
	return &DeepSeekProvider{OpenAIProvider: inner}, nil
}

// OpenRouterProvider targets OpenRouter. Model IDs are passed verbatim.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: withDefault(cfg.BaseURL, defaultOpenRouterBaseURL),
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
