package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewDeepSeekProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       DeepSeekConfig
		wantModel string
		wantErr   bool
	}{
		{"defaults", DeepSeekConfig{APIKey: "sk-ds"}, "deepseek-chat", false},
		{"explicit model", DeepSeekConfig{APIKey: "sk-ds", Model: "deepseek-reasoner"}, "deepseek-reasoner", false},
		{"missing key", DeepSeekConfig{Model: "deepseek-chat"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewDeepSeekProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.wantModel {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.wantModel)
			}
		})
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "anthropic/claude-3-haiku",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No friendly-name mapping for OpenRouter IDs.
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("model = %q, want %q", p.ModelID(), "anthropic/claude-3-haiku")
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestDeepSeekStreamsThroughOpenAIWire(t *testing.T) {
	srv := newSSEServer(t, []string{
		`{"id":"1","model":"deepseek-chat","choices":[{"index":0,"delta":{"content":"Focus "}}]}`,
		`{"id":"1","model":"deepseek-chat","choices":[{"index":0,"delta":{"content":"on finance."},"finish_reason":"stop"}]}`,
	})

	p, err := NewDeepSeekProvider(DeepSeekConfig{APIKey: "sk-ds", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := p.Stream(t.Context(), UserPrompt("sys", "hi", 0.7, 100))
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	text, err := Collect(s, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if text != "Focus on finance." {
		t.Errorf("text = %q", text)
	}
}

func TestDeepSeekGenerateUsesJSONObjectMode(t *testing.T) {
	var gotFormat string
	var gotMessages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages       []json.RawMessage `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotFormat = body.ResponseFormat.Type
		gotMessages = len(body.Messages)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "c1",
			"model": "deepseek-chat",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "```json\n{\"focus\":[\"Networking\"],\"action\":\"Call a mentor\"}\n```"},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewDeepSeekProvider(DeepSeekConfig{APIKey: "sk-ds", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := UserPrompt("sys", "highlights please", 0.7, 200)
	req.Schema = highlightsSchema()
	resp, err := p.Generate(t.Context(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if gotFormat != "json_object" {
		t.Errorf("response_format = %q, want json_object", gotFormat)
	}
	// Schema instruction, system prompt, user prompt.
	if gotMessages != 3 {
		t.Errorf("messages = %d, want 3", gotMessages)
	}
	if string(resp.Content) != `{"focus":["Networking"],"action":"Call a mentor"}` {
		t.Errorf("content = %s", resp.Content)
	}
}
