package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/screens/home"
	"github.com/abhisek/founderfit/internal/screens/welcome"
	"github.com/abhisek/founderfit/internal/store"
	"github.com/abhisek/founderfit/internal/ui/layout"
)

// Options holds the dependencies of the terminal app.
type Options struct {
	Catalog *catalog.Catalog

	// Advice may be nil or unconfigured; advice screens are then hidden.
	Advice *advice.Service

	// Assessments may be nil, in which case nothing can be saved.
	Assessments store.AssessmentRepo

	// Dir receives exported files. Defaults to the working directory.
	Dir string
	Now func() time.Time

	LatestVersion string
	SkipWelcome   bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	draft  *draft.Draft
	width  int
	height int
}

// newAppModel creates the model, starting on the splash screen unless
// it is skipped.
func newAppModel(opts Options) AppModel {
	d := draft.New(opts.Catalog)
	homeScreen := func() screen.Screen {
		return home.New(home.Options{
			Draft:         d,
			Advice:        opts.Advice,
			Assessments:   opts.Assessments,
			Dir:           opts.Dir,
			Now:           opts.Now,
			LatestVersion: opts.LatestVersion,
		})
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeScreen()
	} else {
		initial = welcome.New(homeScreen)
	}
	return AppModel{
		router: router.New(initial),
		draft:  d,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.draft.Store.Answered(), m.draft.Catalog.TotalStatements(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	m := newAppModel(opts)
	defer m.router.CloseAll()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
