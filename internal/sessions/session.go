package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Session is one in-progress assessment held by the HTTP server between
// requests. It is stored by value; the scorer is rebuilt from Answers on
// every request.
type Session struct {
	ID         string                 `json:"id"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Answers    assessment.Answers     `json:"answers"`
	Respondent assessment.Respondent  `json:"respondent"`
	Advice     map[advice.Kind]string `json:"advice,omitempty"`

	// SubmittedID is the stored assessment ID once the session has been
	// submitted.
	SubmittedID string `json:"submitted_id,omitempty"`

	// SubmitClaim is the assessment ID reserved by a submission in
	// progress, and SubmitClaimedAt when it was reserved.
	SubmitClaim     string    `json:"submit_claim,omitempty"`
	SubmitClaimedAt time.Time `json:"submit_claimed_at,omitzero"`
}

// New returns an empty session for catalog c.
func New(c *catalog.Catalog) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Answers:   assessment.NewStore(c).Answers(),
	}
}

// Store rebuilds the scorer state for this session.
func (s *Session) Store(c *catalog.Catalog) (*assessment.Store, error) {
	return assessment.StoreFromAnswers(c, s.Answers)
}

// SetAdvice records the latest advice of a kind.
func (s *Session) SetAdvice(kind advice.Kind, text string) {
	if s.Advice == nil {
		s.Advice = map[advice.Kind]string{}
	}
	s.Advice[kind] = text
}

// Repo stores sessions between requests.
type Repo interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)

	// Update applies fn to the stored session atomically and saves the
	// result. If fn returns an error nothing is saved.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)

	Delete(ctx context.Context, id string) error
}
