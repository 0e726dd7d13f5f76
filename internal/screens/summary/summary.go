package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/store"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

type page int

const (
	pageScores page = iota
	pageDevelopment
)

// Options wires the actions available from the results screen.
type Options struct {
	Assessments store.AssessmentRepo

	// Model is recorded with saved advice.
	Model string

	// AdviceScreen opens the advice menu. Nil when no provider is configured.
	AdviceScreen func() screen.Screen

	// Dir is where exports are written. Empty means the working directory.
	Dir string
	Now func() time.Time
}

// SummaryScreen displays the scored assessment.
type SummaryScreen struct {
	draft  *draft.Draft
	opts   Options
	page   page
	notice string
	failed bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a results screen for the draft.
func New(d *draft.Draft, opts Options) *SummaryScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &SummaryScreen{draft: d, opts: opts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Scores/Development"},
		{Key: "a", Description: "Advice"},
		{Key: "s", Description: "Save"},
		{Key: "e", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		s.page = (s.page + 1) % 2
	case "a":
		if s.opts.AdviceScreen == nil {
			s.warn("Advice is unavailable: configure an LLM provider (see founderfit --help).")
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: s.opts.AdviceScreen()}
		}
	case "s":
		s.save()
	case "e":
		path, err := s.draft.ExportReport(s.opts.Dir, s.opts.Now())
		if err != nil {
			s.warn(err.Error())
			return s, nil
		}
		s.info("Report written to " + path)
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) save() {
	if !s.draft.Unsaved() {
		s.info("Already saved as " + s.draft.SavedID)
		return
	}
	id, err := s.draft.Save(context.Background(), s.opts.Assessments, s.opts.Model)
	switch {
	case errors.Is(err, history.ErrIncomplete):
		missing := assessment.Missing(s.draft.Store, s.draft.Respondent)
		s.warn("Cannot save yet, missing: " + strings.Join(missing, ", "))
	case err != nil:
		s.warn(err.Error())
	default:
		s.info("Saved to history as " + id)
	}
}

func (s *SummaryScreen) info(msg string) {
	s.notice, s.failed = msg, false
}

func (s *SummaryScreen) warn(msg string) {
	s.notice, s.failed = msg, true
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.draft.Result()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTierCard(res, s.draft, cw)))
	b.WriteString("\n\n")

	var body string
	if s.page == pageScores {
		body = renderScores(res, cw)
	} else {
		body = renderGrid(res, cw)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))

	if s.notice != "" {
		style := theme.Done
		if s.failed {
			style = lipgloss.NewStyle().Foreground(theme.Warning)
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(s.notice)))
	}
	return b.String()
}

func renderTierCard(res scoring.Result, d *draft.Draft, cw int) string {
	tierStyle := lipgloss.NewStyle().Foreground(theme.HexColor(res.Tier.Color)).Bold(true)

	lines := []string{
		tierStyle.Render(fmt.Sprintf("%s  ·  %.2f / 5", res.Tier.Label, res.Overall)),
		theme.Body.Render(res.Tier.Description),
		theme.Hint.Render(fmt.Sprintf("Recommended: %s   Strong skills: %d of %d",
			res.Tier.Action, res.StrongCount, len(res.Scores))),
	}
	if res.Answered < res.Total {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("Partial result: %d of %d statements rated", res.Answered, res.Total)))
	}
	if missing := profileMissing(d); missing != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render(missing))
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(components.Card(strings.Join(lines, "\n"), cw))
}

func profileMissing(d *draft.Draft) string {
	var m []string
	if !d.Respondent.Sector.IsSet() {
		m = append(m, "sector")
	}
	if !d.Respondent.Experience.IsSet() {
		m = append(m, "experience")
	}
	if len(m) == 0 {
		return ""
	}
	return "Profile missing: " + strings.Join(m, ", ")
}

func renderScores(res scoring.Result, cw int) string {
	labelWidth := 0
	for _, sc := range res.Scores {
		labelWidth = max(labelWidth, lipgloss.Width(sc.Category))
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Scores by skill"))
	b.WriteString("\n")
	for _, sc := range res.Scores {
		label := lipgloss.NewStyle().Width(labelWidth).Render(sc.Category)
		bar := components.ProgressBar{
			Label:   label,
			Percent: sc.Score / scoring.MaxScore,
			Width:   cw,
			Fill:    theme.HexColor(scoring.Classify(sc.Score).Color),
			Suffix:  fmt.Sprintf("%.2f", sc.Score),
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Strengths") + "  " + theme.Hint.Render(names(res.Strengths)))
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("To develop") + "  " + theme.Hint.Render(names(res.Weaknesses)))
	return b.String()
}

func renderGrid(res scoring.Result, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Development grid"))
	b.WriteString("\n")
	for _, row := range res.Grid {
		label := fmt.Sprintf("%-12s %.1f-%.1f", row.Tier.Label, row.Tier.Threshold, row.Tier.Ceiling)
		suffix := fmt.Sprintf("%3.0f%%", row.Progress)
		if row.Current {
			suffix += " ◂ you"
		} else {
			suffix += "      "
		}
		bar := components.ProgressBar{
			Label:   label,
			Percent: row.Progress / 100,
			Width:   cw,
			Fill:    theme.HexColor(row.Tier.Color),
			Suffix:  suffix,
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Next step") + "  " + theme.Body.Render(res.Tier.Action))
	return b.String()
}

func names(scores []scoring.CategoryScore) string {
	parts := make([]string, len(scores))
	for i, sc := range scores {
		parts[i] = fmt.Sprintf("%s (%.2f)", sc.Category, sc.Score)
	}
	return strings.Join(parts, ", ")
}
