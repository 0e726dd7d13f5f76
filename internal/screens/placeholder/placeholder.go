package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

// PlaceholderScreen explains why a feature cannot be used in this run,
// for example when no database or LLM provider is configured.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Render("╌╌ Unavailable ╌╌") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-4, 60)).Align(lipgloss.Center).Render(p.message)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
