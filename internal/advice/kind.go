package advice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/founderfit/internal/llm"
)

// Kind selects which piece of advice to request.
type Kind string

const (
	Summary   Kind = "summary"
	Training  Kind = "training"
	Strategy  Kind = "strategy"
	Mentoring Kind = "mentoring"
	Funding   Kind = "funding"
	Full      Kind = "full"
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown advice kind")

var kinds = []Kind{Summary, Training, Strategy, Mentoring, Funding, Full}

// Kinds returns every advice kind in menu order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind accepts a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title is the human label shown in menus and report headings.
func (k Kind) Title() string {
	switch k {
	case Summary:
		return "Personalised recommendations"
	case Training:
		return "Training plan"
	case Strategy:
		return "Development strategy"
	case Mentoring:
		return "Mentoring guide"
	case Funding:
		return "Funding guide"
	case Full:
		return "Full analysis"
	default:
		return string(k)
	}
}

// Purpose is the label LLM events for this kind are recorded under.
func (k Kind) Purpose() string {
	return llm.AdvicePurpose(string(k))
}

// Filename names a plain-text download of this advice, e.g.
// "training_20260315.txt".
func (k Kind) Filename(at time.Time) string {
	return fmt.Sprintf("%s_%s.txt", k, at.Format("20060102"))
}
