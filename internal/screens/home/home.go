package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	adv "github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/advice"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/screens/history"
	"github.com/abhisek/founderfit/internal/screens/placeholder"
	"github.com/abhisek/founderfit/internal/screens/profile"
	"github.com/abhisek/founderfit/internal/screens/session"
	"github.com/abhisek/founderfit/internal/screens/skillmap"
	"github.com/abhisek/founderfit/internal/screens/summary"
	"github.com/abhisek/founderfit/internal/store"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
)

// Options carries the dependencies of the screens reachable from home.
type Options struct {
	Draft       *draft.Draft
	Advice      *adv.Service
	Assessments store.AssessmentRepo

	// Dir receives exported reports and advice files.
	Dir string
	Now func() time.Time

	// LatestVersion, when set, is a newer release worth mentioning.
	LatestVersion string
}

// Menu entries, in display order.
const (
	itemStart = iota
	itemContinue
	itemResults
	itemSkillMap
	itemHistory
	itemQuit
)

var menuLabels = []string{
	"START ASSESSMENT",
	"CONTINUE RATING",
	"VIEW RESULTS",
	"SKILL MAP",
	"HISTORY",
	"QUIT",
}

// HomeScreen is the main menu. It shows where the current assessment
// stands and routes into every other screen.
type HomeScreen struct {
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	h := &HomeScreen{opts: opts}

	actions := []func() screen.Screen{
		itemStart:    h.start,
		itemContinue: func() screen.Screen { return session.New(h.opts.Draft, h.results) },
		itemResults:  h.results,
		itemSkillMap: func() screen.Screen { return skillmap.New(h.opts.Draft, h.rateCategory) },
		itemHistory:  h.history,
	}

	items := make([]components.MenuItem, len(menuLabels))
	for i, label := range menuLabels {
		items[i] = components.MenuItem{Label: label}
		if i == itemQuit {
			items[i].Action = func() tea.Cmd { return tea.Quit }
			continue
		}
		open := actions[i]
		items[i].Action = func() tea.Cmd {
			next := open()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// start begins a fresh assessment once the previous one has been saved,
// otherwise it reopens the profile with whatever was already entered.
func (h *HomeScreen) start() screen.Screen {
	d := h.opts.Draft
	if d.SavedID != "" {
		d.Reset()
	}
	return profile.New(d, h.questionnaire)
}

func (h *HomeScreen) questionnaire() screen.Screen {
	return session.New(h.opts.Draft, h.results)
}

func (h *HomeScreen) rateCategory(category string) screen.Screen {
	return session.NewAt(h.opts.Draft, category, h.results)
}

func (h *HomeScreen) results() screen.Screen {
	opts := summary.Options{
		Assessments: h.opts.Assessments,
		Model:       h.opts.Advice.ModelID(),
		Dir:         h.opts.Dir,
		Now:         h.opts.Now,
	}
	if h.opts.Advice.Available() {
		opts.AdviceScreen = func() screen.Screen {
			return advice.New(h.opts.Draft, h.opts.Advice, h.opts.Dir, h.opts.Now)
		}
	}
	return summary.New(h.opts.Draft, opts)
}

func (h *HomeScreen) history() screen.Screen {
	if h.opts.Assessments == nil {
		return placeholder.New("History", "No database is open, so saved assessments cannot be listed.")
	}
	return history.New(h.opts.Assessments, h.opts.Draft.Catalog, h.opts.Dir)
}

// refresh enables menu entries according to the draft. The draft changes
// on other screens, so this runs before every update and render.
func (h *HomeScreen) refresh() {
	d := h.opts.Draft
	h.menu.Items[itemContinue].Disabled = !d.Started()
	h.menu.Items[itemResults].Disabled = d.Store.Answered() == 0

	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = itemStart
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()

	// height is the content area; add back the header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatus(h.opts.Draft, cw))
	if !h.opts.Advice.Available() {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.opts.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.opts.LatestVersion, cw))
	}

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	if compact {
		sections = append(sections, renderMenuCompact(menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(menuLabels, h.menu.Selected, cw, disabled))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
