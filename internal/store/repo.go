package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Streamed     bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageByPurpose aggregates token usage for one purpose label.
type LLMUsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByModel aggregates token usage for one model.
type LLMUsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// CategoryScore is one persisted category mean.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// AssessmentRecord is a submitted assessment with its computed results.
type AssessmentRecord struct {
	ID          string
	Sequence    int64
	Timestamp   time.Time
	Name        string
	Company     string
	Age         *int
	Sector      string
	Experience  string
	Overall     float64
	Level       string
	StrongCount int
	Scores      []CategoryScore

	// Answers is the serialized rating grid, kept opaque here.
	Answers json.RawMessage
}

// AdviceRecord is one piece of generated advice attached to an assessment.
type AdviceRecord struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	AssessmentID string
	Kind         string
	Model        string
	Content      string
}

// AssessmentStats summarises the stored history.
type AssessmentStats struct {
	Count          int
	AverageOverall float64
	ByLevel        map[string]int
	Latest         time.Time
	AdviceCount    int
}

// AssessmentRepo persists submitted assessments and their advice.
type AssessmentRepo interface {
	Save(ctx context.Context, rec *AssessmentRecord) error
	SaveWithAdvice(ctx context.Context, rec *AssessmentRecord, advice []*AdviceRecord) error
	Get(ctx context.Context, id string) (*AssessmentRecord, error)
	List(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error)
	Stats(ctx context.Context) (*AssessmentStats, error)
	SaveAdvice(ctx context.Context, rec *AdviceRecord) error
	ListAdvice(ctx context.Context, assessmentID string) ([]AdviceRecord, error)
}
