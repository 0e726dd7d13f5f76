package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and waits for the whole response. When the
	// request carries a Schema, the response Content is validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Stream sends a prompt and returns the response as incremental text
	// fragments. Schema is ignored. Streams are never retried.
	Stream(ctx context.Context, req Request) (*Stream, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Advice requests are single-turn.
	Messages []Message

	// Schema is the JSON Schema a Generate response must conform to.
	// When nil, the response Content is raw text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "advice-highlights".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the output of a Generate call.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, temperature float64, maxTokens int) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
