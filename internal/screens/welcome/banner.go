package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/ui/theme"
)

// glyphs is a three-row box-drawing alphabet covering the banner letters.
var glyphs = map[rune][3]string{
	'F': {"╔═╗", "╠╣ ", "╚  "},
	'O': {"╔═╗", "║ ║", "╚═╝"},
	'U': {"╦ ╦", "║ ║", "╚═╝"},
	'N': {"╔╗╔", "║║║", "╝╚╝"},
	'D': {"╔╦╗", " ║║", "═╩╝"},
	'E': {"╔═╗", "║╣ ", "╚═╝"},
	'R': {"╦═╗", "╠╦╝", "╩╚═"},
	'I': {"╦", "║", "╩"},
	'T': {"╔╦╗", " ║ ", " ╩ "},
}

const bannerCompact = "F O U N D E R F I T"

// bannerWidth is the narrowest terminal that fits the full banner.
const bannerWidth = 44

// renderWord draws word using glyphs, one space between letters.
func renderWord(word string) string {
	var rows [3][]string
	for _, r := range word {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, len(rows))
	for i, parts := range rows {
		lines[i] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

// RenderBanner returns the FOUNDERFIT banner, FOUNDER in the primary color
// and FIT in the accent color. Narrow terminals get a spaced-out fallback.
func RenderBanner(width int) string {
	primary := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	if width < bannerWidth {
		return primary.Render(bannerCompact)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		primary.Render(renderWord("FOUNDER")),
		" ",
		accent.Render(renderWord("FIT")),
	)
}
