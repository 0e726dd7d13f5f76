package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

const scaleWidth = 15 // five 3-column cells

func (s *SessionScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs(width)))
	b.WriteString("\n\n")

	st := s.draft.Store
	name := s.categoryName()
	heading := fmt.Sprintf("%s  (%d/%d)", name, st.AnsweredIn(name), s.statementCount())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Heading.Render(heading)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("1 = "+components.ScaleLabels[0]+"   5 = "+components.ScaleLabels[4])))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	textWidth := min(width-scaleWidth-10, 70)
	if textWidth < 20 {
		textWidth = 20
	}

	for i, stmt := range s.draft.Catalog.Categories[s.category].Statements {
		focused := i == s.cursor
		value := 0
		if r, ok := st.Get(name, i); ok {
			value = int(r)
		}

		marker := "  "
		style := theme.Unselected
		if focused {
			marker = theme.Selected.Render("▸ ")
			style = theme.Selected
		}
		text := style.Width(textWidth).Render(stmt)
		row := lipgloss.JoinHorizontal(lipgloss.Top, marker, text, "  ", components.Scale(value, focused))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	progress := scoring.ProgressPercent(st) / 100
	bar := components.NewProgressBar("Overall", progress, true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if line := s.statusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}

	return b.String()
}

// renderTabs lists every category, marking complete ones and the active one.
func (s *SessionScreen) renderTabs(width int) string {
	st := s.draft.Store
	tabs := make([]string, 0, len(s.draft.Catalog.Categories))
	for i, cat := range s.draft.Catalog.Categories {
		label := shortName(cat.Name)
		if layout.IsCompactWidth(width) {
			label = initials(cat.Name)
		}
		if st.IsCategoryComplete(cat.Name) {
			label = "✓ " + label
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case i == s.category:
			style = theme.Selected.Underline(true)
		case st.IsCategoryComplete(cat.Name):
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, "  ")
}

func (s *SessionScreen) statusLine() string {
	switch {
	case s.notice != "":
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)
	case s.draft.Store.IsAllComplete():
		return theme.Done.Render("All statements rated. Press Enter for your results.")
	case s.draft.Store.IsCategoryComplete(s.categoryName()):
		return theme.Done.Render("Category complete. Press Enter for the next one.")
	}
	return ""
}

// shortName keeps the part of a category name before " & ".
func shortName(name string) string {
	if i := strings.Index(name, " & "); i > 0 {
		return name[:i]
	}
	return name
}

func initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		if len(r) > 0 && r[0] != '&' {
			out = append(out, r[0])
		}
	}
	return string(out)
}
