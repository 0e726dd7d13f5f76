// Package draft holds the in-progress assessment shared by the terminal
// screens. A single draft lives for the whole program run; screens mutate it
// in place from the Bubble Tea update loop, so it needs no locking.
package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/store"
)

// ErrNoStorage is returned by Save when no assessment repository is wired.
var ErrNoStorage = errors.New("assessment history is not available")

// Draft is the assessment being filled in.
type Draft struct {
	Catalog    *catalog.Catalog
	Store      *assessment.Store
	Respondent assessment.Respondent
	Advice     map[advice.Kind]string

	// Category is the last category the user rated in, used to resume.
	Category string

	// SavedID is set once the draft has been stored in the history.
	SavedID string

	// persisted tracks advice text already written under SavedID.
	persisted map[advice.Kind]string
}

// New returns an empty draft over the catalog with the default age filled in.
func New(c *catalog.Catalog) *Draft {
	d := &Draft{Catalog: c}
	d.Reset()
	return d
}

// Reset discards all ratings, profile fields and advice.
func (d *Draft) Reset() {
	age := assessment.DefaultAge
	d.Store = assessment.NewStore(d.Catalog)
	d.Respondent = assessment.Respondent{Age: &age}
	d.Advice = make(map[advice.Kind]string)
	d.Category = ""
	d.SavedID = ""
	d.persisted = make(map[advice.Kind]string)
}

// Started reports whether anything has been entered yet.
func (d *Draft) Started() bool {
	return d.Store.Answered() > 0 || d.Respondent.Sector.IsSet() || d.Respondent.Experience.IsSet()
}

// Complete reports whether the draft can be submitted.
func (d *Draft) Complete() bool {
	return assessment.Complete(d.Store, d.Respondent)
}

// Result scores the current ratings.
func (d *Draft) Result() scoring.Result {
	return scoring.Evaluate(d.Store)
}

// Input is the advice prompt input for the current state.
func (d *Draft) Input() advice.Input {
	return advice.Input{Respondent: d.Respondent, Result: d.Result()}
}

// SetAdvice keeps generated advice on the draft.
func (d *Draft) SetAdvice(kind advice.Kind, text string) {
	d.Advice[kind] = text
}

// Unsaved reports whether Save would write anything.
func (d *Draft) Unsaved() bool {
	if d.SavedID == "" {
		return true
	}
	for kind, text := range d.Advice {
		if d.persisted[kind] != text {
			return true
		}
	}
	return false
}

// Save stores the completed draft in the history and records its ID. Once
// saved, later calls only append advice generated since the last save.
func (d *Draft) Save(ctx context.Context, repo store.AssessmentRepo, model string) (string, error) {
	if repo == nil {
		return "", ErrNoStorage
	}

	if d.SavedID == "" {
		rec, err := history.Save(ctx, repo, history.Submission{
			Respondent: d.Respondent,
			Store:      d.Store,
			Advice:     d.Advice,
			Model:      model,
		})
		if err != nil {
			return "", err
		}
		d.SavedID = rec.ID
		for kind, text := range d.Advice {
			d.persisted[kind] = text
		}
		return d.SavedID, nil
	}

	for _, kind := range advice.Kinds() {
		text, ok := d.Advice[kind]
		if !ok || text == "" || d.persisted[kind] == text {
			continue
		}
		if err := repo.SaveAdvice(ctx, &store.AdviceRecord{
			AssessmentID: d.SavedID,
			Kind:         string(kind),
			Model:        model,
			Content:      text,
		}); err != nil {
			return "", fmt.Errorf("save %s advice: %w", kind, err)
		}
		d.persisted[kind] = text
	}
	return d.SavedID, nil
}
