package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/history"
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

func saveAssessment(t *testing.T, repo store.AssessmentRepo, c *catalog.Catalog, name string, v assessment.Rating) *store.AssessmentRecord {
	t.Helper()
	st := assessment.NewStore(c)
	for _, cat := range c.Categories {
		for i := range cat.Statements {
			if err := st.Set(cat.Name, i, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	rec, err := history.Save(context.Background(), repo, history.Submission{
		Respondent: assessment.Respondent{
			Name:       name,
			Sector:     assessment.Select("Agriculture"),
			Experience: assessment.Select("1-3 years"),
		},
		Store:  st,
		Advice: map[advice.Kind]string{advice.Summary: "Keep going."},
		Model:  "mock",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return rec
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("history not loaded")
	}
}

func TestEmptyHistory(t *testing.T) {
	db := openTestStore(t)
	s := New(db.AssessmentRepo(), catalog.Default(), t.TempDir())
	load(t, s)

	if !strings.Contains(s.View(100, 30), "No saved assessments yet") {
		t.Error("expected empty message")
	}
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("enter on empty list should do nothing")
	}
}

func TestListAndExpand(t *testing.T) {
	db := openTestStore(t)
	c := catalog.Default()
	saveAssessment(t, db.AssessmentRepo(), c, "Awa", 4)
	saveAssessment(t, db.AssessmentRepo(), c, "Moussa", 2)

	s := New(db.AssessmentRepo(), c, t.TempDir())
	load(t, s)

	if len(s.records) != 2 {
		t.Fatalf("records = %d, want 2", len(s.records))
	}
	view := s.View(120, 40)
	for _, want := range []string{"Awa", "Moussa", "Excellence", "Beginner"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expanding should load advice")
	}
	s.Update(cmd())

	view = s.View(120, 40)
	if !strings.Contains(view, "Advice: "+advice.Summary.Title()) {
		t.Errorf("expanded view missing advice list:\n%s", view)
	}
	if !strings.Contains(view, c.Categories[0].Name) {
		t.Error("expanded view missing category scores")
	}

	// Collapsing and expanding again reuses the loaded advice.
	s.Update(specialKey(tea.KeyEnter))
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("advice should not be reloaded")
	}
}

func TestNavigationBounds(t *testing.T) {
	db := openTestStore(t)
	c := catalog.Default()
	saveAssessment(t, db.AssessmentRepo(), c, "Awa", 4)
	saveAssessment(t, db.AssessmentRepo(), c, "Moussa", 3)

	s := New(db.AssessmentRepo(), c, t.TempDir())
	load(t, s)

	s.Update(specialKey(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestExportWritesMarkdown(t *testing.T) {
	db := openTestStore(t)
	c := catalog.Default()
	saveAssessment(t, db.AssessmentRepo(), c, "Awa", 5)

	dir := t.TempDir()
	s := New(db.AssessmentRepo(), c, dir)
	load(t, s)

	s.Update(keyPress('e'))
	if !strings.HasPrefix(s.notice, "Report written to ") {
		t.Fatalf("notice = %q", s.notice)
	}
	path := strings.TrimPrefix(s.notice, "Report written to ")
	if filepath.Dir(path) != dir {
		t.Errorf("report written to %s, want dir %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Awa", "Keep going."} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %q", want)
		}
	}
}
