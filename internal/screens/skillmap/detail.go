package skillmap

import (
	"fmt"
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

// CategoryDetailScreen lists every statement of one category with its
// rating.
type CategoryDetailScreen struct {
	draft    *draft.Draft
	category string
	rate     RateFunc
}

var _ screen.Screen = (*CategoryDetailScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryDetailScreen)(nil)

func newCategoryDetail(d *draft.Draft, category string, rate RateFunc) *CategoryDetailScreen {
	return &CategoryDetailScreen{draft: d, category: category, rate: rate}
}

func (d *CategoryDetailScreen) Init() tea.Cmd { return nil }
func (d *CategoryDetailScreen) Title() string { return d.category }

func (d *CategoryDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "r" && d.rate != nil {
		next := d.rate(d.category)
		return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return d, nil
}

func (d *CategoryDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Rate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *CategoryDetailScreen) View(width, height int) string {
	contentWidth := min(width-8, 70)
	cat, ok := d.draft.Catalog.Category(d.category)
	if !ok {
		return ""
	}

	st := d.draft.Store
	score := scoring.ScoreCategory(st, d.category)
	tier := scoring.Classify(score)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + cat.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.HexColor(tier.Color)).
		Render(fmt.Sprintf("  %.2f / 5  ·  %d of %d rated", score, st.AnsweredIn(cat.Name), len(cat.Statements))))
	b.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().Width(contentWidth - 18).Foreground(theme.Text)
	for i, stmt := range cat.Statements {
		value := 0
		if r, ok := st.Get(cat.Name, i); ok {
			value = int(r)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			"  ", textStyle.Render(stmt), "  ", components.Scale(value, false))
		b.WriteString(row)
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
