package profile

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

// otherSector is the picker entry that enables free-text sector input.
const otherSector = "Other…"

type field int

const (
	fieldName field = iota
	fieldCompany
	fieldAge
	fieldSector
	fieldCustomSector
	fieldExperience
	fieldContinue
	fieldCount
)

// ProfileScreen collects the respondent's details.
type ProfileScreen struct {
	draft *draft.Draft
	next  func() screen.Screen

	name, company, age, custom components.TextInput
	sector, experience         components.Picker

	focus  field
	errMsg string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a profile form prefilled from the draft. On Continue the
// screen replaces itself with next, or pops when next is nil.
func New(d *draft.Draft, next func() screen.Screen) *ProfileScreen {
	p := &ProfileScreen{
		draft:      d,
		next:       next,
		name:       components.NewTextInput("optional", false, 40),
		company:    components.NewTextInput("optional", false, 40),
		age:        components.NewTextInput(strconv.Itoa(assessment.DefaultAge), true, 3),
		custom:     components.NewTextInput("describe your sector", false, 40),
		sector:     components.NewPicker(append(append([]string{}, catalog.Sectors...), otherSector)),
		experience: components.NewPicker(catalog.ExperienceLevels),
	}

	r := d.Respondent
	p.name.SetValue(r.Name)
	p.company.SetValue(r.Company)
	if r.Age != nil {
		p.age.SetValue(strconv.Itoa(*r.Age))
	}
	if v, ok := r.Sector.Get(); ok {
		if !p.sector.Choose(v) {
			p.sector.Choose(otherSector)
			p.custom.SetValue(v)
		}
	}
	if v, ok := r.Experience.Get(); ok {
		p.experience.Choose(v)
	}
	return p
}

func (p *ProfileScreen) Init() tea.Cmd {
	return p.name.Focus()
}

func (p *ProfileScreen) Title() string {
	return "Your Profile"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, p.updateFocused(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return p, p.move(1)
	case "shift+tab", "up":
		return p, p.move(-1)
	case "enter":
		return p, p.submit()
	}
	return p, p.updateFocused(msg)
}

func (p *ProfileScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.focus {
	case fieldName:
		p.name, cmd = p.name.Update(msg)
	case fieldCompany:
		p.company, cmd = p.company.Update(msg)
	case fieldAge:
		p.age, cmd = p.age.Update(msg)
	case fieldCustomSector:
		p.custom, cmd = p.custom.Update(msg)
	case fieldSector:
		p.sector, cmd = p.sector.Update(msg)
	case fieldExperience:
		p.experience, cmd = p.experience.Update(msg)
	}
	return cmd
}

// move shifts focus, skipping the custom sector field unless "Other" is
// chosen.
func (p *ProfileScreen) move(delta int) tea.Cmd {
	if in := p.input(p.focus); in != nil {
		in.Blur()
	}
	next := p.focus
	for {
		next = (next + field(delta) + fieldCount) % fieldCount
		if next != fieldCustomSector || p.otherChosen() {
			break
		}
	}
	p.focus = next
	if in := p.input(next); in != nil {
		return in.Focus()
	}
	return nil
}

// input returns the text input behind a field, or nil for pickers and
// the button.
func (p *ProfileScreen) input(f field) *components.TextInput {
	switch f {
	case fieldName:
		return &p.name
	case fieldCompany:
		return &p.company
	case fieldAge:
		return &p.age
	case fieldCustomSector:
		return &p.custom
	}
	return nil
}

func (p *ProfileScreen) otherChosen() bool {
	v, ok := p.sector.Value()
	return ok && v == otherSector
}

// respondent builds the respondent from the form.
func (p *ProfileScreen) respondent() (assessment.Respondent, error) {
	r := assessment.Respondent{
		Name:    p.name.Value(),
		Company: p.company.Value(),
	}

	if p.age.Value() != "" {
		age, err := p.age.NumericValue()
		if err != nil {
			return r, errors.New("age must be a whole number")
		}
		r.Age = &age
	}

	if v, ok := p.sector.Value(); ok {
		if v == otherSector {
			v = p.custom.Value()
		}
		r.Sector = assessment.Select(v)
	}
	if v, ok := p.experience.Value(); ok {
		r.Experience = assessment.Select(v)
	}
	return r, r.Validate()
}

func (p *ProfileScreen) submit() tea.Cmd {
	r, err := p.respondent()
	switch {
	case errors.Is(err, assessment.ErrInvalidAge):
		p.errMsg = "Age must be between 18 and 100."
		return nil
	case errors.Is(err, assessment.ErrEmptySelection):
		p.errMsg = "Describe your sector or pick one from the list."
		return nil
	case err != nil:
		p.errMsg = err.Error()
		return nil
	}

	p.errMsg = ""
	p.draft.Respondent = r
	if p.next == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := p.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *ProfileScreen) View(width, height int) string {
	labelStyle := lipgloss.NewStyle().Width(14).Foreground(theme.TextDim)

	row := func(f field, label, value string) string {
		marker := "  "
		if p.focus == f {
			marker = theme.Selected.Render("▸ ")
			label = theme.Selected.Width(14).Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		return marker + label + value
	}

	rows := []string{
		row(fieldName, "Name", p.name.View()),
		row(fieldCompany, "Company", p.company.View()),
		row(fieldAge, "Age", p.age.View()),
		row(fieldSector, "Sector *", p.sector.View(p.focus == fieldSector)),
	}
	if p.otherChosen() {
		rows = append(rows, row(fieldCustomSector, "  Your sector", p.custom.View()))
	}
	rows = append(rows,
		row(fieldExperience, "Experience *", p.experience.View(p.focus == fieldExperience)),
		"",
		"  "+components.NewButton("Continue", p.focus == fieldContinue, nil).View(),
	)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Heading.Render("Tell us about yourself")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("* required to complete the assessment")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(strings.Join(rows, "\n"), components.ContentWidth(width))))

	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg)))
	}
	return b.String()
}
