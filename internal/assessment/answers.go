package assessment

import (
	"fmt"

	"github.com/abhisek/founderfit/internal/catalog"
)

// Answers is the serialized form of a Store: per category, one entry per
// statement, nil where the statement is unanswered. It round-trips through
// JSON (null) and YAML (~ or null).
type Answers map[string][]*Rating

// Answers exports the store contents.
func (s *Store) Answers() Answers {
	out := make(Answers, len(s.catalog.Categories))
	for _, cat := range s.catalog.Categories {
		row := make([]*Rating, len(cat.Statements))
		for i := range cat.Statements {
			if r, ok := s.ratings[slot{cat.Name, i}]; ok {
				row[i] = &r
			}
		}
		out[cat.Name] = row
	}
	return out
}

// Restore replaces the store contents with a. Every present rating is
// checked with the same contract as Set; on error the store is unchanged.
func (s *Store) Restore(a Answers) error {
	staged := NewStore(s.catalog)
	for category, row := range a {
		for i, r := range row {
			if r == nil {
				continue
			}
			if err := staged.Set(category, i, *r); err != nil {
				return fmt.Errorf("restore %q[%d]: %w", category, i, err)
			}
		}
	}
	s.ratings = staged.ratings
	return nil
}

// StoreFromAnswers builds a store for the catalog and loads a into it.
func StoreFromAnswers(c *catalog.Catalog, a Answers) (*Store, error) {
	st := NewStore(c)
	if err := st.Restore(a); err != nil {
		return nil, err
	}
	return st, nil
}
