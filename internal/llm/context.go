package llm

import (
	"context"
	"strings"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purpose labels recorded with every request event. Streamed advice uses
// AdvicePurpose of its kind.
const (
	PurposeHighlights = "advice-highlights"
	PurposeUnknown    = "unknown"

	advicePurposePrefix = "advice-"
)

// AdvicePurpose labels a request generating advice of kind, e.g.
// "advice-training".
func AdvicePurpose(kind string) string {
	return advicePurposePrefix + kind
}

// NormalizePurpose accepts either a full label or a bare advice kind, so
// "training" and "advice-training" select the same events.
func NormalizePurpose(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" || p == PurposeUnknown || strings.HasPrefix(p, advicePurposePrefix) {
		return p
	}
	return AdvicePurpose(p)
}

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
