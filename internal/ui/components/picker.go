package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/ui/theme"
)

// Picker is a single-choice selector rendered on one line and cycled with
// the left and right keys. Chosen is -1 until the user confirms a value.
type Picker struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewPicker creates a picker with nothing chosen.
func NewPicker(options []string) Picker {
	return Picker{Options: options, Chosen: -1}
}

// Choose marks the option with the given text as chosen. It returns false
// when no option matches.
func (p *Picker) Choose(option string) bool {
	for i, o := range p.Options {
		if o == option {
			p.Cursor = i
			p.Chosen = i
			return true
		}
	}
	return false
}

// Value returns the chosen option.
func (p Picker) Value() (string, bool) {
	if p.Chosen < 0 || p.Chosen >= len(p.Options) {
		return "", false
	}
	return p.Options[p.Chosen], true
}

// Update moves the cursor and confirms on space or enter.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(p.Options) == 0 {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		p.Cursor = (p.Cursor - 1 + len(p.Options)) % len(p.Options)
		p.Chosen = p.Cursor
	case "right", "l":
		p.Cursor = (p.Cursor + 1) % len(p.Options)
		p.Chosen = p.Cursor
	case "space", "enter":
		p.Chosen = p.Cursor
	}
	return p, nil
}

// View renders the option under the cursor between arrows.
func (p Picker) View(focused bool) string {
	if len(p.Options) == 0 {
		return ""
	}
	label := p.Options[p.Cursor]
	style := theme.Unselected
	if p.Chosen < 0 {
		label = "choose…"
		style = theme.Hint
	}
	if focused {
		return theme.Selected.Render("◂ ") + style.Render(label) + theme.Selected.Render(" ▸")
	}
	return "  " + style.Render(label)
}

// ScaleLabels describes the five points of the agreement scale.
var ScaleLabels = []string{
	"Strongly disagree",
	"Disagree",
	"Neutral",
	"Agree",
	"Strongly agree",
}

// Scale renders a 1 to 5 agreement scale with the current value
// highlighted. Zero means no value.
func Scale(value int, focused bool) string {
	parts := make([]string, 0, len(ScaleLabels))
	for i := 1; i <= len(ScaleLabels); i++ {
		cell := " " + string(rune('0'+i)) + " "
		switch {
		case i == value && focused:
			parts = append(parts, theme.ButtonActive.Padding(0).Render(cell))
		case i == value:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(cell))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(cell))
		}
	}
	return strings.Join(parts, "")
}
