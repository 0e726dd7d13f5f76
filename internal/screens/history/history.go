package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/report"
	"github.com/abhisek/founderfit/internal/scoring"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/store"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

// listLimit caps how many past assessments are shown.
const listLimit = 50

type historyLoadedMsg struct {
	Records []store.AssessmentRecord
	Err     error
}

type adviceLoadedMsg struct {
	ID    string
	Kinds []string
	Err   error
}

// HistoryScreen displays past assessments, newest first.
type HistoryScreen struct {
	repo    store.AssessmentRepo
	catalog *catalog.Catalog
	dir     string

	records  []store.AssessmentRecord
	advice   map[string][]string // assessment ID → advice kinds
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	notice   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Exports are written into dir.
func New(repo store.AssessmentRepo, c *catalog.Catalog, dir string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		catalog:  c,
		dir:      dir,
		advice:   make(map[string][]string),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.repo.List(context.Background(), store.QueryOpts{Limit: listLimit})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) loadAdvice(id string) tea.Cmd {
	return func() tea.Msg {
		records, err := s.repo.ListAdvice(context.Background(), id)
		if err != nil {
			return adviceLoadedMsg{ID: id, Err: err}
		}
		var kinds []string
		for _, r := range records {
			kinds = append(kinds, r.Kind)
		}
		return adviceLoadedMsg{ID: id, Kinds: kinds}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "e", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case adviceLoadedMsg:
		if msg.Err == nil {
			s.advice[msg.ID] = msg.Kinds
		}
		return s, nil

	case tea.KeyPressMsg:
		if len(s.records) == 0 {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.records[s.selected].ID
			if _, ok := s.advice[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAdvice(id)
			}
		case "e":
			s.notice = s.export(s.records[s.selected])
		}
	}
	return s, nil
}

// export writes the Markdown report of rec and returns a status line.
func (s *HistoryScreen) export(rec store.AssessmentRecord) string {
	doc, err := history.Document(context.Background(), s.repo, s.catalog, rec.ID)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	text, err := report.Render(report.Markdown, doc)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	path := filepath.Join(s.dir, report.Filename(report.Markdown, rec.Timestamp))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Report written to " + path
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No saved assessments yet. Complete one and press s on the results screen.")
	}

	var b strings.Builder
	b.WriteString("\n")

	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	for i, rec := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		who := rec.Name
		if who == "" {
			who = "Anonymous"
		}
		if rec.Company != "" {
			who += " · " + rec.Company
		}

		line := fmt.Sprintf("%s%s  %-28s  %.2f  %s",
			prefix, rec.Timestamp.Format("Jan 02, 2006"), truncate(who, 28), rec.Overall, rec.Level)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		center(style.Render(line))

		if !s.expanded[i] {
			continue
		}
		for _, sc := range rec.Scores {
			tier := scoring.Classify(sc.Score)
			center(lipgloss.NewStyle().Foreground(theme.HexColor(tier.Color)).
				Render(fmt.Sprintf("    %-34s %.2f", sc.Category, sc.Score)))
		}
		center(dim.Render(fmt.Sprintf("    %s · %s · %d strong categories",
			orDash(rec.Sector), orDash(rec.Experience), rec.StrongCount)))

		kinds, ok := s.advice[rec.ID]
		switch {
		case !ok:
			center(dim.Italic(true).Render("    Loading advice..."))
		case len(kinds) == 0:
			center(dim.Italic(true).Render("    No advice generated"))
		default:
			titles := make([]string, len(kinds))
			for j, k := range kinds {
				titles[j] = adviceTitle(k)
			}
			center(dim.Render("    Advice: " + strings.Join(titles, ", ")))
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	return b.String()
}

func adviceTitle(kind string) string {
	if k, err := advice.ParseKind(kind); err == nil {
		return k.Title()
	}
	return kind
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
