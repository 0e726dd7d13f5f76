package skillmap

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

// RateFunc opens the questionnaire on a category.
type RateFunc func(category string) screen.Screen

// SkillMapScreen gives an overview of every skill category: how many
// statements are rated and the current score.
type SkillMapScreen struct {
	draft  *draft.Draft
	rate   RateFunc
	cursor int
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a skill map over the draft.
func New(d *draft.Draft, rate RateFunc) *SkillMapScreen {
	return &SkillMapScreen{draft: d, rate: rate}
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "r", Description: "Rate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	n := len(s.draft.Catalog.Categories)
	switch kmsg.String() {
	case "up", "k":
		s.cursor = (s.cursor - 1 + n) % n
	case "down", "j":
		s.cursor = (s.cursor + 1) % n
	case "enter":
		cat := s.draft.Catalog.Categories[s.cursor].Name
		detail := newCategoryDetail(s.draft, cat, s.rate)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	case "r":
		if s.rate == nil {
			return s, nil
		}
		next := s.rate(s.draft.Catalog.Categories[s.cursor].Name)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	st := s.draft.Store
	scores := scoring.ScoreCategories(st)
	cw := components.ContentWidth(width)

	nameWidth := 0
	for _, cat := range s.draft.Catalog.Categories {
		nameWidth = max(nameWidth, lipgloss.Width(cat.Name))
	}

	var lines []string
	for i, sc := range scores {
		total := s.draft.Catalog.StatementCount(sc.Category)
		answered := st.AnsweredIn(sc.Category)

		icon, iconColor := stateIcon(answered, total)
		marker := "  "
		nameStyle := lipgloss.NewStyle().Width(nameWidth).Foreground(theme.Text)
		if i == s.cursor {
			marker = theme.Selected.Render("▸ ")
			nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
		}

		prefix := marker +
			lipgloss.NewStyle().Foreground(iconColor).Render(icon) + " " +
			nameStyle.Render(sc.Category)
		bar := components.ProgressBar{
			Label:   prefix,
			Percent: sc.Score / scoring.MaxScore,
			Width:   cw,
			Fill:    theme.HexColor(scoring.Classify(sc.Score).Color),
			Suffix:  fmt.Sprintf("%.2f  %d/%d", sc.Score, answered, total),
		}
		lines = append(lines, bar.View())
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Heading.Render("Entrepreneurial skills")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("✓ complete   ◐ in progress   ○ not started")))
	return b.String()
}

func stateIcon(answered, total int) (string, color.Color) {
	switch {
	case total > 0 && answered == total:
		return "✓", theme.Success
	case answered > 0:
		return "◐", theme.Accent
	default:
		return "○", theme.TextDim
	}
}
