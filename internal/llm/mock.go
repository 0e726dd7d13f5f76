package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Chunks is what Stream emits. When empty, Content is emitted whole.
	Chunks []string

	// StreamErr fails a Stream after all Chunks have been emitted.
	StreamErr error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback, when set, answers every call after the queue is drained.
	Fallback *MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewEchoProvider returns a mock that answers every prompt with a fixed
// line of advice. Used by the "mock" provider setting for offline runs.
func NewEchoProvider() *MockProvider {
	return &MockProvider{Fallback: &MockResponse{
		Content: json.RawMessage("Advice is unavailable offline. Configure an LLM provider to get personalised recommendations."),
		Chunks: []string{
			"Advice is unavailable offline. ",
			"Configure an LLM provider ",
			"to get personalised recommendations.",
		},
	}}
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.Fallback != nil {
			return *m.Fallback, true
		}
		return MockResponse{}, false
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	content := resp.Content
	if content == nil && len(resp.Chunks) > 0 {
		content = json.RawMessage(strings.Join(resp.Chunks, ""))
	}

	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// Stream emits the next canned response as fragments. Err fails the call
// before any fragment, StreamErr fails it after the last one.
func (m *MockProvider) Stream(ctx context.Context, req Request) (*Stream, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	chunks := resp.Chunks
	if len(chunks) == 0 && len(resp.Content) > 0 {
		chunks = []string{string(resp.Content)}
	}

	return NewStream(ctx, func(ctx context.Context, emit EmitFunc) (StreamResult, error) {
		res := StreamResult{Usage: resp.Usage, Model: "mock", StopReason: "end"}
		for _, c := range chunks {
			if err := emit(c); err != nil {
				return res, err
			}
		}
		return res, resp.StreamErr
	}), nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and Stream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
