package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/founderfit/internal/llm"
)

// ErrNoProvider is returned when advice is requested without a configured
// LLM provider.
var ErrNoProvider = errors.New("no LLM provider configured")

// Highlights is the structured form of the short summary.
type Highlights struct {
	FocusSkills []string `json:"focus_skills" yaml:"focus_skills"`
	Action      string   `json:"action_30_days" yaml:"action_30_days"`
	Resource    string   `json:"resource" yaml:"resource"`
}

// Service requests advice from an LLM. It holds no per-assessment state,
// so one Service is shared by every session.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an advice service. provider may be nil, in which case
// every request fails with ErrNoProvider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// ModelID returns the configured model, or "" without a provider.
func (s *Service) ModelID() string {
	if !s.Available() {
		return ""
	}
	return s.provider.ModelID()
}

func (s *Service) request(kind Kind, in Input) (llm.Request, error) {
	if !s.Available() {
		return llm.Request{}, ErrNoProvider
	}
	prompt, err := BuildPrompt(kind, in)
	if err != nil {
		return llm.Request{}, err
	}
	return llm.UserPrompt(SystemPrompt, prompt, s.cfg.Temperature, s.cfg.maxTokens(kind)), nil
}

// Stream starts streaming advice of the given kind. The caller must Close
// or drain the returned stream.
func (s *Service) Stream(ctx context.Context, kind Kind, in Input) (*llm.Stream, error) {
	req, err := s.request(kind, in)
	if err != nil {
		return nil, err
	}

	stream, err := s.provider.Stream(llm.WithPurpose(ctx, kind.Purpose()), req)
	if err != nil {
		return nil, fmt.Errorf("%s advice: %w", kind, err)
	}
	return stream, nil
}

// Collect streams advice to the end and returns the full text. onChunk,
// when non-nil, observes each fragment. A failed stream yields "" and the
// error.
func (s *Service) Collect(ctx context.Context, kind Kind, in Input, onChunk func(string)) (string, error) {
	stream, err := s.Stream(ctx, kind, in)
	if err != nil {
		return "", err
	}
	text, err := llm.Collect(stream, onChunk)
	if err != nil {
		return "", fmt.Errorf("%s advice: %w", kind, err)
	}
	return text, nil
}

// Highlights requests the structured summary through schema-validated
// generation.
func (s *Service) Highlights(ctx context.Context, in Input) (*Highlights, error) {
	if !s.Available() {
		return nil, ErrNoProvider
	}

	req := llm.UserPrompt(SystemPrompt, buildHighlightsMessage(in), s.cfg.Temperature, s.cfg.SummaryMaxTokens)
	req.Schema = HighlightsSchema

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeHighlights), req)
	if err != nil {
		return nil, fmt.Errorf("highlights: %w", err)
	}

	var out Highlights
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse highlights response: %w", err)
	}
	return &out, nil
}
