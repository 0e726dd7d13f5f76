package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1-mini",
}

// OpenAIProvider implements Provider using the OpenAI SDK. It also serves
// OpenAI-compatible APIs (DeepSeek, OpenRouter) via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string

	// jsonObjectOnly is set for compatible APIs that accept the json_object
	// response format but not json_schema. The schema then travels in the
	// system prompt.
	jsonObjectOnly bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	cfg.Model = resolveModel(cfg.Model, openaiModels)
	return newOpenAIProviderRaw(cfg)
}

// newOpenAIProviderRaw builds the client without friendly-name mapping,
// for compatible APIs whose model IDs are used verbatim.
func newOpenAIProviderRaw(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

func (p *OpenAIProvider) chatRequest(req Request) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := p.chatRequest(req)

	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		if p.jsonObjectOnly {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
			chatReq.Messages = withSchemaInstruction(chatReq.Messages, req.Schema, schemaBytes)
		} else {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   req.Schema.Name,
					Schema: json.RawMessage(schemaBytes),
					Strict: true,
				},
			}
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in OpenAI response"),
		}
	}

	content := json.RawMessage(resp.Choices[0].Message.Content)
	if req.Schema != nil {
		content = stripCodeFence(content)
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    content,
		Usage:      mapOpenAIUsage(resp.Usage),
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) Stream(ctx context.Context, req Request) (*Stream, error) {
	chatReq := p.chatRequest(req)
	chatReq.Stream = true
	chatReq.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	open := func(ctx context.Context) (*openai.ChatCompletionStream, error) {
		stream, err := p.client.CreateChatCompletionStream(ctx, chatReq)
		if err != nil {
			return nil, mapOpenAIError(err)
		}
		return stream, nil
	}

	return openStream(ctx, open, func(ctx context.Context, stream *openai.ChatCompletionStream, emit EmitFunc) (StreamResult, error) {
		defer stream.Close()

		res := StreamResult{Model: p.model, StopReason: "end"}
		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return res, nil
			}
			if err != nil {
				return res, mapOpenAIError(err)
			}

			if chunk.Model != "" {
				res.Model = chunk.Model
			}
			if chunk.Usage != nil {
				res.Usage = mapOpenAIUsage(*chunk.Usage)
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			choice := chunk.Choices[0]
			if choice.FinishReason != "" {
				res.StopReason = mapOpenAIStopReason(choice.FinishReason)
			}
			if err := emit(choice.Delta.Content); err != nil {
				return res, err
			}
		}
	})
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

// withSchemaInstruction prepends a system message that spells out the
// schema the answer must follow.
func withSchemaInstruction(msgs []openai.ChatCompletionMessage, schema *Schema, def []byte) []openai.ChatCompletionMessage {
	instr := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf("Reply with a single JSON object (%s) that validates against this JSON Schema:\n%s",
			schema.Description, def),
	}
	return append([]openai.ChatCompletionMessage{instr}, msgs...)
}

func mapOpenAIUsage(u openai.Usage) Usage {
	return Usage{
		InputTokens:  u.PromptTokens,
		OutputTokens: u.CompletionTokens,
		TotalTokens:  u.TotalTokens,
	}
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return &ErrUnauthorized{Err: err}
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case reqErr.HTTPStatusCode == http.StatusUnauthorized:
			return &ErrUnauthorized{Err: err}
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
