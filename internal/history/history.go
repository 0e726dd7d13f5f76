// Package history persists completed assessments and rebuilds reports
// from them.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/report"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/store"
)

// ErrIncomplete is returned when submitting an assessment that still has
// unanswered statements or a missing sector or experience.
var ErrIncomplete = errors.New("assessment is incomplete")

// Submission is a finished assessment ready to be stored.
type Submission struct {
	Respondent assessment.Respondent
	Store      *assessment.Store

	// Advice holds any advice texts generated during the session.
	Advice map[advice.Kind]string
	Model  string
}

// NewRecord scores the submission and flattens it into a store record.
func NewRecord(sub Submission) (*store.AssessmentRecord, error) {
	if !assessment.Complete(sub.Store, sub.Respondent) {
		return nil, fmt.Errorf("%w: missing %v", ErrIncomplete, assessment.Missing(sub.Store, sub.Respondent))
	}

	answers, err := json.Marshal(sub.Store.Answers())
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	res := scoring.Evaluate(sub.Store)
	scores := make([]store.CategoryScore, len(res.Scores))
	for i, s := range res.Scores {
		scores[i] = store.CategoryScore{Category: s.Category, Score: s.Score}
	}

	r := sub.Respondent
	return &store.AssessmentRecord{
		Name:        r.Name,
		Company:     r.Company,
		Age:         r.Age,
		Sector:      r.Sector.Or(""),
		Experience:  r.Experience.Or(""),
		Overall:     res.Overall,
		Level:       res.Tier.Label,
		StrongCount: res.StrongCount,
		Scores:      scores,
		Answers:     answers,
	}, nil
}

// Save stores a completed assessment and any advice generated for it in
// one transaction. The returned record carries the assigned ID.
func Save(ctx context.Context, repo store.AssessmentRepo, sub Submission) (*store.AssessmentRecord, error) {
	return SaveAs(ctx, repo, "", sub)
}

// SaveAs is Save with a caller-chosen assessment ID. An empty id lets the
// store assign one.
func SaveAs(ctx context.Context, repo store.AssessmentRepo, id string, sub Submission) (*store.AssessmentRecord, error) {
	rec, err := NewRecord(sub)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	var records []*store.AdviceRecord
	for _, kind := range advice.Kinds() {
		if text := sub.Advice[kind]; text != "" {
			records = append(records, &store.AdviceRecord{
				Kind:    string(kind),
				Model:   sub.Model,
				Content: text,
			})
		}
	}
	if err := repo.SaveWithAdvice(ctx, rec, records); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return rec, nil
}

// Restore rebuilds the respondent and rating store of a saved assessment.
func Restore(c *catalog.Catalog, rec *store.AssessmentRecord) (assessment.Respondent, *assessment.Store, error) {
	var answers assessment.Answers
	if err := json.Unmarshal(rec.Answers, &answers); err != nil {
		return assessment.Respondent{}, nil, fmt.Errorf("decode answers of %s: %w", rec.ID, err)
	}
	st, err := assessment.StoreFromAnswers(c, answers)
	if err != nil {
		return assessment.Respondent{}, nil, fmt.Errorf("restore answers of %s: %w", rec.ID, err)
	}

	r := assessment.Respondent{
		Name:    rec.Name,
		Company: rec.Company,
		Age:     rec.Age,
	}
	if rec.Sector != "" {
		r.Sector = assessment.Select(rec.Sector)
	}
	if rec.Experience != "" {
		r.Experience = assessment.Select(rec.Experience)
	}
	return r, st, nil
}

// Document loads a saved assessment as an export document. The most
// recent summary advice, if any, is embedded.
func Document(ctx context.Context, repo store.AssessmentRepo, c *catalog.Catalog, id string) (report.Document, error) {
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return report.Document{}, fmt.Errorf("load assessment %s: %w", id, err)
	}
	if rec == nil {
		return report.Document{}, fmt.Errorf("assessment %s not found", id)
	}

	r, st, err := Restore(c, rec)
	if err != nil {
		return report.Document{}, err
	}

	records, err := repo.ListAdvice(ctx, id)
	if err != nil {
		return report.Document{}, fmt.Errorf("load advice for %s: %w", id, err)
	}
	var summary string
	for _, a := range records {
		if a.Kind == string(advice.Summary) {
			summary = a.Content
		}
	}

	return report.Document{
		GeneratedAt: rec.Timestamp,
		Respondent:  r,
		Result:      scoring.Evaluate(st),
		Summary:     summary,
	}, nil
}
