package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/store"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "advice" }
func (s *stubScreen) Title() string                           { return "Advice" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ratedDraft(t *testing.T, v assessment.Rating) *draft.Draft {
	t.Helper()
	d := draft.New(catalog.Default())
	for _, cat := range d.Catalog.Categories {
		for i := range cat.Statements {
			if err := d.Store.Set(cat.Name, i, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	d.Respondent.Sector = assessment.Select("Agriculture")
	d.Respondent.Experience = assessment.Select("1-3 years")
	return d
}

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

func TestSummaryScreen_Title(t *testing.T) {
	s := New(ratedDraft(t, 4), Options{})
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(ratedDraft(t, 4), Options{})
	view := s.View(100, 30)
	for _, want := range []string{"Excellence", "4.00 / 5", "Sharing expertise"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	view = s.View(100, 30)
	if !strings.Contains(view, "Development grid") {
		t.Error("tab should switch to the development grid")
	}
}

func TestSummaryScreen_PartialResult(t *testing.T) {
	d := draft.New(catalog.Default())
	s := New(d, Options{})
	view := s.View(100, 30)
	if !strings.Contains(view, "0 of 36 statements rated") {
		t.Error("empty draft should be flagged as partial")
	}
	if !strings.Contains(view, "Beginner") {
		t.Error("empty draft scores as Beginner")
	}
}

func TestSummaryScreen_AdviceUnavailable(t *testing.T) {
	s := New(ratedDraft(t, 3), Options{})
	_, cmd := s.Update(keyPress('a'))
	if cmd != nil {
		t.Fatal("no advice screen should be pushed without a provider")
	}
	if !s.failed || !strings.Contains(s.notice, "unavailable") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestSummaryScreen_AdvicePush(t *testing.T) {
	s := New(ratedDraft(t, 3), Options{
		AdviceScreen: func() screen.Screen { return &stubScreen{} },
	})
	_, cmd := s.Update(keyPress('a'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestSummaryScreen_Save(t *testing.T) {
	repo := openTestStore(t).AssessmentRepo()
	d := ratedDraft(t, 3)
	s := New(d, Options{Assessments: repo, Model: "mock"})

	s.Update(keyPress('s'))
	if s.failed || d.SavedID == "" {
		t.Fatalf("save failed: %q", s.notice)
	}

	s.Update(keyPress('s'))
	if !strings.Contains(s.notice, "Already saved") {
		t.Errorf("second save notice = %q", s.notice)
	}

	list, err := repo.List(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("stored %d assessments, want 1", len(list))
	}
}

func TestSummaryScreen_SaveIncomplete(t *testing.T) {
	repo := openTestStore(t).AssessmentRepo()
	d := ratedDraft(t, 3)
	d.Respondent.Experience = assessment.Selection{}
	s := New(d, Options{Assessments: repo})

	s.Update(keyPress('s'))
	if !s.failed || !strings.Contains(s.notice, "experience") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestSummaryScreen_Export(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	s := New(ratedDraft(t, 2), Options{Dir: dir, Now: func() time.Time { return at }})

	s.Update(keyPress('e'))
	if s.failed {
		t.Fatalf("export failed: %q", s.notice)
	}
	if _, err := os.Stat(filepath.Join(dir, "founderfit_report_20260701.md")); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(ratedDraft(t, 3), Options{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg")
	}
}
