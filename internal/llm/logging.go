package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/founderfit/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. A nil repo disables
// recording but keeps the slog trail.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.event(ctx, req, start, err)
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	l.record(ctx, data)

	return resp, err
}

// Stream relays the inner stream fragment by fragment and records one
// event once it has ended. Partial text of a failed stream is kept in the
// event for inspection.
func (l *LoggingProvider) Stream(ctx context.Context, req Request) (*Stream, error) {
	start := time.Now()

	s, err := openStream(ctx, func(ctx context.Context) (*Stream, error) {
		return l.inner.Stream(ctx, req)
	}, func(ctx context.Context, inner *Stream, emit EmitFunc) (StreamResult, error) {
		defer inner.Close()

		var body strings.Builder
		var emitErr error
		for c := range inner.Chunks() {
			body.WriteString(c)
			if emitErr = emit(c); emitErr != nil {
				inner.Close()
				break
			}
		}
		res, err := inner.Wait()
		if err == nil {
			err = emitErr
		}

		data := l.event(ctx, req, start, err)
		data.Streamed = true
		data.InputTokens = res.Usage.InputTokens
		data.OutputTokens = res.Usage.OutputTokens
		if res.Model != "" {
			data.Model = res.Model
		}
		data.ResponseBody = body.String()
		l.record(context.WithoutCancel(ctx), data)

		return res, err
	})
	if err != nil {
		l.record(ctx, l.event(ctx, req, start, err))
		return nil, err
	}
	return s, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(ctx context.Context, req Request, start time.Time, err error) store.LLMRequestEventData {
	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	return data
}

func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	slog.Debug("llm request",
		"purpose", data.Purpose,
		"model", data.Model,
		"streamed", data.Streamed,
		"latency_ms", data.LatencyMs,
		"success", data.Success)

	if l.eventRepo == nil {
		return
	}
	// The request has already completed; a failed write must not fail it.
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		slog.Warn("failed to log LLM request event", "error", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
