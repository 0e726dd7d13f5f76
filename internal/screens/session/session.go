package session

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/router"
	"github.com/abhisek/founderfit/internal/screen"
	"github.com/abhisek/founderfit/internal/screens/draft"
	"github.com/abhisek/founderfit/internal/ui/layout"
)

// ResultsFactory builds the screen shown once every statement is rated.
type ResultsFactory func() screen.Screen

// SessionScreen walks the respondent through the statements of one
// category at a time.
type SessionScreen struct {
	draft   *draft.Draft
	results ResultsFactory

	category int // index into the catalog
	cursor   int // statement index within the category
	notice   string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New opens the questionnaire on the category the draft was last rated
// in, or the first incomplete one.
func New(d *draft.Draft, results ResultsFactory) *SessionScreen {
	s := &SessionScreen{draft: d, results: results}

	start := d.Category
	if start == "" || d.Store.IsCategoryComplete(start) {
		if next, ok := d.Store.NextIncompleteCategory(start); ok {
			start = next
		}
	}
	s.jumpTo(start)
	return s
}

// NewAt opens the questionnaire on a specific category.
func NewAt(d *draft.Draft, category string, results ResultsFactory) *SessionScreen {
	s := &SessionScreen{draft: d, results: results}
	s.jumpTo(category)
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	return "Self-Assessment"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-5", Description: "Rate"},
		{Key: "↑↓", Description: "Statement"},
		{Key: "←→", Description: "Category"},
		{Key: "Tab", Description: "Next incomplete"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	s.notice = ""
	key := kmsg.String()
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.statementCount()-1 {
			s.cursor++
		}
	case "left", "h":
		n := len(s.draft.Catalog.Categories)
		s.setCategory((s.category - 1 + n) % n)
	case "right", "l":
		s.setCategory((s.category + 1) % len(s.draft.Catalog.Categories))
	case "tab":
		s.advance()
	case "enter":
		if s.draft.Store.IsAllComplete() && s.results != nil {
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: s.results()}
			}
		}
		if s.draft.Store.IsCategoryComplete(s.categoryName()) {
			s.advance()
		} else {
			missing := s.statementCount() - s.draft.Store.AnsweredIn(s.categoryName())
			s.notice = fmt.Sprintf("%d statement(s) left in this category", missing)
		}
	case "1", "2", "3", "4", "5":
		s.rate(assessment.Rating(key[0] - '0'))
	}
	return s, nil
}

// rate records a rating for the statement under the cursor and moves to
// the next unrated statement of the category.
func (s *SessionScreen) rate(v assessment.Rating) {
	name := s.categoryName()
	if err := s.draft.Store.Set(name, s.cursor, v); err != nil {
		s.notice = err.Error()
		return
	}
	s.draft.Category = name

	n := s.statementCount()
	for step := 1; step < n; step++ {
		i := (s.cursor + step) % n
		if _, ok := s.draft.Store.Get(name, i); !ok {
			s.cursor = i
			return
		}
	}
	if s.cursor < n-1 {
		s.cursor++
	}
}

// advance moves to the next incomplete category after the current one.
func (s *SessionScreen) advance() {
	next, ok := s.draft.Store.NextIncompleteCategory(s.categoryName())
	if !ok {
		s.notice = "All statements rated. Press Enter for your results."
		return
	}
	s.jumpTo(next)
}

func (s *SessionScreen) jumpTo(category string) {
	idx, ok := s.draft.Catalog.Lookup(category)
	if !ok {
		idx = 0
	}
	s.setCategory(idx)
}

func (s *SessionScreen) setCategory(idx int) {
	s.category = idx
	s.cursor = 0
	name := s.categoryName()
	for i := 0; i < s.statementCount(); i++ {
		if _, ok := s.draft.Store.Get(name, i); !ok {
			s.cursor = i
			break
		}
	}
}

func (s *SessionScreen) categoryName() string {
	return s.draft.Catalog.Categories[s.category].Name
}

func (s *SessionScreen) statementCount() int {
	return len(s.draft.Catalog.Categories[s.category].Statements)
}
