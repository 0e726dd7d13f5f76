package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗╦ ╦╔╗╔╔╦╗╔═╗╦═╗  ╔═╗╦╔╦╗
╠╣ ║ ║║ ║║║║ ║║║╣ ╠╦╝  ╠╣ ║ ║ 
╚  ╚═╝╚═╝╝╚╝═╩╝╚═╝╩╚═  ╚  ╩ ╩ `

const titleCompact = "F O U N D E R · F I T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStatus summarises the current draft: who it is for, how far the
// rating has got and the tier reached so far.
func renderStatus(d *draft.Draft, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	who := d.Respondent.Name
	if d.Respondent.Company != "" {
		if who != "" {
			who += " · "
		}
		who += d.Respondent.Company
	}
	if who == "" {
		who = "not filled in"
	}

	answered := d.Store.Answered()
	total := d.Catalog.TotalStatements()
	progress := fmt.Sprintf("%d/%d rated (%.0f%%)", answered, total, scoring.ProgressPercent(d.Store))

	lines := []string{
		label.Render("Profile   ") + value.Render(who),
		label.Render("Progress  ") + value.Render(progress),
	}
	if answered > 0 {
		res := d.Result()
		tier := lipgloss.NewStyle().Foreground(theme.HexColor(res.Tier.Color)).Bold(true)
		lines = append(lines, label.Render("Score     ")+
			value.Render(fmt.Sprintf("%.2f / 5  ", res.Overall))+
			tier.Render(res.Tier.Label))
	}
	if d.SavedID != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved to history"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning when no LLM provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set FOUNDERFIT_DEEPSEEK_API_KEY to get personalised advice")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available, run founderfit update", latestVersion))
}
