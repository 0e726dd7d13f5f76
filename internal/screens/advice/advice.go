package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	adv "github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/llm"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/ui/components"
	"github.com/abhisek/founderfit/internal/ui/layout"
	"github.com/abhisek/founderfit/internal/ui/theme"
)

type phase int

const (
	phaseMenu phase = iota
	phaseStreaming
	phaseDone
	phaseFailed
)

// Messages carry the generation they belong to so that results of a
// cancelled request are ignored.
type streamStartedMsg struct {
	gen    int
	stream *llm.Stream
	err    error
}

type chunkMsg struct {
	gen  int
	text string
}

type streamEndMsg struct {
	gen int
	err error
}

type highlightsMsg struct {
	gen int
	h   *adv.Highlights
	err error
}

// AdviceScreen lets the user pick an advice kind and streams the answer.
type AdviceScreen struct {
	draft *draft.Draft
	svc   *adv.Service
	dir   string
	now   func() time.Time

	menu  components.Menu
	phase phase
	kind  adv.Kind

	gen        int
	cancel     context.CancelFunc
	stream     *llm.Stream
	text       strings.Builder
	highlights *adv.Highlights
	err        error

	scroll int
	notice string
}

var _ screen.Screen = (*AdviceScreen)(nil)
var _ screen.KeyHintProvider = (*AdviceScreen)(nil)
var _ screen.Closer = (*AdviceScreen)(nil)

// highlightsKind labels the structured summary in the menu; it is not an
// advice kind the service streams.
const highlightsKind adv.Kind = "highlights"

// New creates an advice screen writing downloads into dir.
func New(d *draft.Draft, svc *adv.Service, dir string, now func() time.Time) *AdviceScreen {
	if now == nil {
		now = time.Now
	}
	if dir == "" {
		dir = "."
	}
	s := &AdviceScreen{draft: d, svc: svc, dir: dir, now: now}

	var items []components.MenuItem
	for _, k := range adv.Kinds() {
		items = append(items, components.MenuItem{
			Label:  k.Title(),
			Action: func() tea.Cmd { return s.start(k) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Key highlights",
		Action: func() tea.Cmd { return s.start(highlightsKind) },
	})
	s.menu = components.NewMenu(items)
	return s
}

func (s *AdviceScreen) Init() tea.Cmd {
	return nil
}

func (s *AdviceScreen) Title() string {
	if s.phase == phaseMenu {
		return "Advice"
	}
	return s.kindTitle()
}

func (s *AdviceScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseStreaming:
		return []layout.KeyHint{
			{Key: "x", Description: "Stop"},
			{Key: "Esc", Description: "Cancel & back"},
		}
	case phaseDone:
		hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
		if s.kind != highlightsKind {
			hints = append(hints, layout.KeyHint{Key: "w", Description: "Write .txt"})
		}
		return append(hints,
			layout.KeyHint{Key: "m", Description: "Menu"},
			layout.KeyHint{Key: "Esc", Description: "Back"})
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "m", Description: "Menu"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close cancels any request in flight.
func (s *AdviceScreen) Close() {
	s.stop()
}

func (s *AdviceScreen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
}

// start begins a new request, cancelling any previous one.
func (s *AdviceScreen) start(kind adv.Kind) tea.Cmd {
	s.stop()
	s.gen++
	s.kind = kind
	s.phase = phaseStreaming
	s.text.Reset()
	s.highlights = nil
	s.err = nil
	s.scroll = 0
	s.notice = ""

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	gen, svc, in := s.gen, s.svc, s.draft.Input()

	if kind == highlightsKind {
		return func() tea.Msg {
			h, err := svc.Highlights(ctx, in)
			return highlightsMsg{gen: gen, h: h, err: err}
		}
	}
	return func() tea.Msg {
		st, err := svc.Stream(ctx, kind, in)
		return streamStartedMsg{gen: gen, stream: st, err: err}
	}
}

// waitChunk reads the next fragment, or the terminal event once the
// stream's channel is closed.
func waitChunk(gen int, st *llm.Stream) tea.Cmd {
	return func() tea.Msg {
		if c, ok := <-st.Chunks(); ok {
			return chunkMsg{gen: gen, text: c}
		}
		_, err := st.Wait()
		return streamEndMsg{gen: gen, err: err}
	}
}

func (s *AdviceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case streamStartedMsg:
		if msg.gen != s.gen {
			if msg.stream != nil {
				msg.stream.Close()
			}
			return s, nil
		}
		if msg.err != nil {
			s.fail(msg.err)
			return s, nil
		}
		s.stream = msg.stream
		return s, waitChunk(msg.gen, msg.stream)

	case chunkMsg:
		if msg.gen != s.gen || s.stream == nil {
			return s, nil
		}
		s.text.WriteString(msg.text)
		return s, waitChunk(msg.gen, s.stream)

	case streamEndMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		s.stream = nil
		s.release()
		if msg.err != nil {
			s.fail(msg.err)
			return s, nil
		}
		s.phase = phaseDone
		s.draft.SetAdvice(s.kind, s.text.String())
		return s, nil

	case highlightsMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		s.release()
		if msg.err != nil {
			s.fail(msg.err)
			return s, nil
		}
		s.highlights = msg.h
		s.phase = phaseDone
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AdviceScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.phase {
	case phaseMenu:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phaseStreaming:
		if key == "x" {
			s.stop()
			s.gen++
			s.text.Reset()
			s.phase = phaseMenu
			s.notice = "Stopped. Partial advice was discarded."
		}

	case phaseDone:
		switch key {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "w":
			if s.kind == highlightsKind {
				return s, nil
			}
			path, err := s.draft.ExportAdvice(s.dir, s.kind, s.now())
			if err != nil {
				s.notice = err.Error()
			} else {
				s.notice = "Saved to " + path
			}
		case "m":
			s.phase = phaseMenu
			s.notice = ""
		}

	case phaseFailed:
		switch key {
		case "enter":
			return s, s.start(s.kind)
		case "m":
			s.phase = phaseMenu
			s.notice = ""
		}
	}
	return s, nil
}

func (s *AdviceScreen) fail(err error) {
	s.stop()
	s.text.Reset()
	s.err = err
	s.phase = phaseFailed
}

// release drops the cancel func of a request that has finished.
func (s *AdviceScreen) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *AdviceScreen) kindTitle() string {
	if s.kind == highlightsKind {
		return "Key highlights"
	}
	return s.kind.Title()
}

func (s *AdviceScreen) View(width, height int) string {
	cw := min(width-4, 90)

	if s.phase == phaseMenu {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Heading.Render("What would you like advice on?")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Model: "+s.svc.ModelID())))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
		if s.notice != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)))
		}
		return b.String()
	}

	header := theme.Heading.Render(s.kindTitle())
	var status string
	switch s.phase {
	case phaseStreaming:
		status = theme.Hint.Render("Generating…")
	case phaseFailed:
		status = lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("Advice failed: %v. Press Enter to retry.", s.err))
	case phaseDone:
		status = theme.Done.Render("Done.")
		if s.notice != "" {
			status = theme.Hint.Render(s.notice)
		}
	}

	body := s.text.String()
	if s.highlights != nil {
		body = renderHighlights(s.highlights)
	}
	wrapped := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(body)
	lines := strings.Split(wrapped, "\n")

	visible := max(height-5, 1)
	if s.phase == phaseStreaming && len(lines) > visible {
		s.scroll = len(lines) - visible // follow the tail while streaming
	}
	if s.scroll > max(len(lines)-visible, 0) {
		s.scroll = max(len(lines)-visible, 0)
	}
	end := min(s.scroll+visible, len(lines))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(header)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		strings.Join(lines[s.scroll:end], "\n")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(status)))
	return b.String()
}

func renderHighlights(h *adv.Highlights) string {
	var b strings.Builder
	b.WriteString("Focus skills\n")
	for _, f := range h.FocusSkills {
		b.WriteString("  • " + f + "\n")
	}
	b.WriteString("\n30-day action\n  " + h.Action + "\n")
	b.WriteString("\nResource\n  " + h.Resource)
	return b.String()
}
