package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func filledStore(t *testing.T, c *catalog.Catalog, v assessment.Rating) *assessment.Store {
	t.Helper()
	st := assessment.NewStore(c)
	for _, cat := range c.Categories {
		for i := range cat.Statements {
			if err := st.Set(cat.Name, i, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return st
}

func respondent() assessment.Respondent {
	age := 41
	return assessment.Respondent{
		Name:       "Moussa Fall",
		Age:        &age,
		Sector:     assessment.Select("Fishing cooperative"),
		Experience: assessment.Select("More than 5 years"),
	}
}

func TestNewRecord_Incomplete(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name string
		sub  Submission
	}{
		{"no ratings", Submission{Respondent: respondent(), Store: assessment.NewStore(c)}},
		{"no sector", Submission{
			Respondent: assessment.Respondent{Experience: assessment.Select("None")},
			Store:      filledStore(t, c, 3),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecord(tt.sub)
			if !errors.Is(err, ErrIncomplete) {
				t.Fatalf("err = %v, want ErrIncomplete", err)
			}
		})
	}
}

func TestSaveAndDocument(t *testing.T) {
	ctx := context.Background()
	c := catalog.Default()
	repo := openTestStore(t).AssessmentRepo()

	rec, err := Save(ctx, repo, Submission{
		Respondent: respondent(),
		Store:      filledStore(t, c, 4),
		Advice: map[advice.Kind]string{
			advice.Summary:  "Mentor two young founders.",
			advice.Training: "",
		},
		Model: "deepseek-chat",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if rec.Level != "Excellence" || rec.StrongCount != 6 {
		t.Errorf("level=%q strong=%d, want Excellence/6", rec.Level, rec.StrongCount)
	}

	records, err := repo.ListAdvice(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Kind != "summary" || records[0].Model != "deepseek-chat" {
		t.Fatalf("advice records = %+v, want one summary", records)
	}

	doc, err := Document(ctx, repo, c, rec.ID)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Summary != "Mentor two young founders." {
		t.Errorf("Summary = %q", doc.Summary)
	}
	if doc.Result.Overall != 4 || doc.Result.Tier.Label != "Excellence" {
		t.Errorf("overall=%v tier=%q", doc.Result.Overall, doc.Result.Tier.Label)
	}
	if got := doc.Respondent.Sector.Or(""); got != "Fishing cooperative" {
		t.Errorf("Sector = %q", got)
	}
	if doc.Respondent.Age == nil || *doc.Respondent.Age != 41 {
		t.Errorf("Age = %v", doc.Respondent.Age)
	}
}

func TestRestore_RoundTripsRatings(t *testing.T) {
	c := catalog.Default()
	st := filledStore(t, c, 2)
	if err := st.Set(catalog.Creativity, 3, 5); err != nil {
		t.Fatal(err)
	}

	rec, err := NewRecord(Submission{Respondent: respondent(), Store: st})
	if err != nil {
		t.Fatal(err)
	}
	r, restored, err := Restore(c, rec)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := restored.Get(catalog.Creativity, 3); got != 5 {
		t.Errorf("Creativity[3] = %d, want 5", got)
	}
	if r.Name != "Moussa Fall" || r.Company != "" {
		t.Errorf("respondent = %+v", r)
	}
}

func TestDocument_NotFound(t *testing.T) {
	repo := openTestStore(t).AssessmentRepo()
	if _, err := Document(context.Background(), repo, catalog.Default(), "missing"); err == nil {
		t.Fatal("expected error for unknown assessment")
	}
}

// rejectAdvice makes every advice insert of the given kind fail.
func rejectAdvice(t *testing.T, s *store.Store, kind advice.Kind) {
	t.Helper()
	_, err := s.DB().Exec(fmt.Sprintf(`CREATE TRIGGER reject_advice BEFORE INSERT ON advice_records
		WHEN NEW.kind = '%s' BEGIN SELECT RAISE(ABORT, 'advice rejected'); END`, kind))
	if err != nil {
		t.Fatal(err)
	}
}

func TestSave_AdviceFailureLeavesNoAssessment(t *testing.T) {
	ctx := context.Background()
	c := catalog.Default()
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	rejectAdvice(t, s, advice.Funding)

	sub := Submission{
		Respondent: respondent(),
		Store:      filledStore(t, c, 3),
		Advice: map[advice.Kind]string{
			advice.Summary: "Keep records.",
			advice.Funding: "Apply to DER/FJ.",
		},
	}
	if _, err := Save(ctx, repo, sub); err == nil {
		t.Fatal("expected the advice insert to fail")
	}

	recs, err := repo.List(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Fatalf("assessment left behind after failed save: %+v", recs)
	}

	// A retry after the fault is cleared stores exactly one assessment.
	if _, err := s.DB().Exec(`DROP TRIGGER reject_advice`); err != nil {
		t.Fatal(err)
	}
	rec, err := Save(ctx, repo, sub)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	recs, _ = repo.List(ctx, store.QueryOpts{})
	if len(recs) != 1 {
		t.Fatalf("records after retry = %d, want 1", len(recs))
	}
	adv, _ := repo.ListAdvice(ctx, rec.ID)
	if len(adv) != 2 {
		t.Fatalf("advice after retry = %d, want 2", len(adv))
	}
}

func TestSaveAs_KeepsID(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).AssessmentRepo()

	rec, err := SaveAs(ctx, repo, "claimed-id", Submission{
		Respondent: respondent(),
		Store:      filledStore(t, catalog.Default(), 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "claimed-id" {
		t.Fatalf("id = %q", rec.ID)
	}
	got, err := repo.Get(ctx, "claimed-id")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
}
