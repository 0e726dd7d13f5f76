package skillmap

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
)

type stubScreen struct{ category string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.category }
func (s *stubScreen) Title() string                           { return "Rate" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func rateStub(category string) screen.Screen {
	return &stubScreen{category: category}
}

func TestCursorWraps(t *testing.T) {
	d := draft.New(catalog.Default())
	s := New(d, rateStub)

	s.Update(specialKey(tea.KeyUp))
	if want := len(d.Catalog.Categories) - 1; s.cursor != want {
		t.Errorf("cursor = %d, want %d", s.cursor, want)
	}
	s.Update(specialKey(tea.KeyDown))
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}

func TestEnterPushesDetail(t *testing.T) {
	d := draft.New(catalog.Default())
	s := New(d, rateStub)
	s.Update(specialKey(tea.KeyDown))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	detail, ok := push.Screen.(*CategoryDetailScreen)
	if !ok {
		t.Fatalf("expected CategoryDetailScreen, got %T", push.Screen)
	}
	if want := d.Catalog.Categories[1].Name; detail.category != want {
		t.Errorf("category = %q, want %q", detail.category, want)
	}
}

func TestRateOpensQuestionnaire(t *testing.T) {
	d := draft.New(catalog.Default())
	s := New(d, rateStub)

	_, cmd := s.Update(keyPress('r'))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if got := push.Screen.View(0, 0); got != d.Catalog.Categories[0].Name {
		t.Errorf("opened %q, want %q", got, d.Catalog.Categories[0].Name)
	}
}

func TestRateWithoutFactory(t *testing.T) {
	s := New(draft.New(catalog.Default()), nil)
	if _, cmd := s.Update(keyPress('r')); cmd != nil {
		t.Error("expected no command without a rate factory")
	}
}

func TestDetailRateReplaces(t *testing.T) {
	d := draft.New(catalog.Default())
	cat := d.Catalog.Categories[2].Name
	detail := newCategoryDetail(d, cat, rateStub)

	_, cmd := detail.Update(keyPress('r'))
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.View(0, 0); got != cat {
		t.Errorf("opened %q, want %q", got, cat)
	}
}

func TestViewShowsProgress(t *testing.T) {
	d := draft.New(catalog.Default())
	cat := d.Catalog.Categories[0]
	for i := range cat.Statements {
		if err := d.Store.Set(cat.Name, i, 4); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Store.Set(d.Catalog.Categories[1].Name, 0, 2); err != nil {
		t.Fatal(err)
	}

	view := New(d, rateStub).View(100, 30)
	for _, want := range []string{"✓", "◐", "○", "4.00", "6/6", "1/6", cat.Name} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDetailViewListsStatements(t *testing.T) {
	d := draft.New(catalog.Default())
	cat := d.Catalog.Categories[0]
	view := newCategoryDetail(d, cat.Name, nil).View(120, 40)

	if !strings.Contains(view, "0 of 6 rated") {
		t.Error("view missing rated count")
	}
	if first := strings.Fields(cat.Statements[0])[0]; !strings.Contains(view, first) {
		t.Errorf("view missing statement text %q", first)
	}
}
