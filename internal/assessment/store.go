// Package assessment holds the mutable state of one assessment session:
// the ratings given so far and the respondent's profile.
package assessment

import (
	"errors"
	"fmt"

	"github.com/abhisek/founderfit/internal/catalog"
)

// Rating is a Likert response in [MinRating, MaxRating].
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

// Valid reports whether r lies in the closed rating range.
func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrIndexOutOfRange = errors.New("statement index out of range")
	ErrInvalidRating   = errors.New("rating out of range")
)

type slot struct {
	category string
	index    int
}

// Store maps (category, statement index) to a rating. A missing entry
// means the statement is unanswered. Not safe for concurrent use.
type Store struct {
	catalog *catalog.Catalog
	ratings map[slot]Rating
}

// NewStore creates an empty store bound to the given catalog.
func NewStore(c *catalog.Catalog) *Store {
	return &Store{
		catalog: c,
		ratings: make(map[slot]Rating),
	}
}

// Catalog returns the catalog this store is bound to.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Set records a rating, overwriting any earlier one for the same slot.
func (s *Store) Set(category string, index int, value Rating) error {
	n, err := s.statementCount(category)
	if err != nil {
		return err
	}
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %q has %d statements, got index %d", ErrIndexOutOfRange, category, n, index)
	}
	if !value.Valid() {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidRating, value, MinRating, MaxRating)
	}
	s.ratings[slot{category, index}] = value
	return nil
}

// Get returns the rating for a slot and whether it has been answered.
func (s *Store) Get(category string, index int) (Rating, bool) {
	r, ok := s.ratings[slot{category, index}]
	return r, ok
}

// IsCategoryComplete reports whether every statement in category is rated.
// Unknown categories are never complete.
func (s *Store) IsCategoryComplete(category string) bool {
	n := s.catalog.StatementCount(category)
	if n == 0 {
		return false
	}
	return s.AnsweredIn(category) == n
}

// IsAllComplete reports whether every category is complete.
func (s *Store) IsAllComplete() bool {
	for _, cat := range s.catalog.Categories {
		if !s.IsCategoryComplete(cat.Name) {
			return false
		}
	}
	return true
}

// NextIncompleteCategory scans the catalog cyclically, starting just after
// the category named by after (or at the beginning when after is empty or
// unknown), and returns the first incomplete category. It visits every
// category exactly once and returns false when all are complete.
func (s *Store) NextIncompleteCategory(after string) (string, bool) {
	cats := s.catalog.Categories
	if len(cats) == 0 {
		return "", false
	}

	start := 0
	if i, ok := s.catalog.Lookup(after); ok {
		start = i + 1
	}

	for offset := range len(cats) {
		name := cats[(start+offset)%len(cats)].Name
		if !s.IsCategoryComplete(name) {
			return name, true
		}
	}
	return "", false
}

// Answered returns the number of rated statements across the catalog.
func (s *Store) Answered() int {
	return len(s.ratings)
}

// AnsweredIn returns the number of rated statements in one category.
func (s *Store) AnsweredIn(category string) int {
	count := 0
	for i := range s.catalog.StatementCount(category) {
		if _, ok := s.ratings[slot{category, i}]; ok {
			count++
		}
	}
	return count
}

// Ratings returns the present ratings of a category in statement order.
func (s *Store) Ratings(category string) []Rating {
	var out []Rating
	for i := range s.catalog.StatementCount(category) {
		if r, ok := s.ratings[slot{category, i}]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) statementCount(category string) (int, error) {
	cat, ok := s.catalog.Category(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return len(cat.Statements), nil
}
