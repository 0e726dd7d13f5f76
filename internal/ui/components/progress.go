package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. Percent is a fraction
// in [0,1]; values outside are clamped when drawn.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Fill overrides the filled segment color. Nil means theme.Secondary.
	Fill color.Color

	// Suffix, when set, replaces the percentage text.
	Suffix string
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	trailer := ""
	switch {
	case p.Suffix != "":
		trailer = "  " + p.Suffix
	case p.ShowPercent:
		trailer = fmt.Sprintf("  %3d%%", int(clamp01(p.Percent)*100+0.5))
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(trailer)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*clamp01(p.Percent) + 0.5)
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	if trailer != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(trailer)
	}

	return result
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
