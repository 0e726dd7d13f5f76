package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screens/home"
	"github.com/abhisek/founderfit/internal/screens/welcome"
)

func newTestModel(skipWelcome bool) AppModel {
	return newAppModel(Options{Catalog: catalog.Default(), Dir: ".", SkipWelcome: skipWelcome})
}

func TestStartsOnWelcome(t *testing.T) {
	m := newTestModel(false)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("welcome should schedule its animation")
	}
}

func TestSkipWelcome(t *testing.T) {
	m := newTestModel(true)
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want home", m.router.Active())
	}
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newTestModel(true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should be ignored")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newTestModel(true)
	m.Update(router.PushScreenMsg{Screen: home.New(home.Options{Draft: m.draft})})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewHeaderShowsProgress(t *testing.T) {
	m := newTestModel(true)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(AppModel)

	if err := m.draft.Store.Set(m.draft.Catalog.Categories[0].Name, 0, 3); err != nil {
		t.Fatal(err)
	}
	content := m.render()
	if !strings.Contains(content, "1/36 rated") {
		t.Error("header should show rated progress")
	}
	if !strings.Contains(content, "Navigate") {
		t.Error("footer should show home key hints")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(true)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(model.(AppModel).render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
