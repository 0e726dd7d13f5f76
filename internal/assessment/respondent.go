package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/founderfit/internal/catalog"
	"gopkg.in/yaml.v3"
)

const (
	MinAge     = 18
	MaxAge     = 100
	DefaultAge = 30
)

var (
	ErrInvalidAge        = errors.New("age out of range")
	ErrInvalidExperience = errors.New("unknown experience level")
	ErrEmptySelection    = errors.New("selection is empty")
)

// Selection is a choice that may not have been made yet. The zero value
// is unset; there is no placeholder string.
type Selection struct {
	value string
	set   bool
}

// Select returns a set Selection holding v.
func Select(v string) Selection {
	return Selection{value: v, set: true}
}

// Get returns the selected value and whether one was made.
func (s Selection) Get() (string, bool) {
	return s.value, s.set
}

// IsSet reports whether a value was selected.
func (s Selection) IsSet() bool {
	return s.set
}

// Or returns the selected value, or fallback when unset.
func (s Selection) Or(fallback string) string {
	if !s.set {
		return fallback
	}
	return s.value
}

// MarshalJSON encodes an unset selection as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as unset.
func (s *Selection) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Selection{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Select(v)
	return nil
}

// MarshalYAML encodes an unset selection as null.
func (s Selection) MarshalYAML() (any, error) {
	if !s.set {
		return nil, nil
	}
	return s.value, nil
}

// UnmarshalYAML decodes null or an absent value as unset.
func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*s = Selection{}
		return nil
	}
	var v string
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = Select(v)
	return nil
}

// Respondent describes the person taking the assessment. Name, Company and
// Age are optional and never gate completion; Sector and Experience do.
type Respondent struct {
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	Company    string    `json:"company,omitempty" yaml:"company,omitempty"`
	Age        *int      `json:"age,omitempty" yaml:"age,omitempty"`
	Sector     Selection `json:"sector" yaml:"sector"`
	Experience Selection `json:"experience" yaml:"experience"`
}

// Validate checks the fields that have been provided.
func (r Respondent) Validate() error {
	if r.Age != nil && (*r.Age < MinAge || *r.Age > MaxAge) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidAge, *r.Age, MinAge, MaxAge)
	}
	if v, ok := r.Sector.Get(); ok && strings.TrimSpace(v) == "" {
		return fmt.Errorf("sector: %w", ErrEmptySelection)
	}
	if v, ok := r.Experience.Get(); ok && !catalog.IsExperienceLevel(v) {
		return fmt.Errorf("%w: %q", ErrInvalidExperience, v)
	}
	return nil
}

// ProfileComplete reports whether the required selections are made.
func (r Respondent) ProfileComplete() bool {
	return r.Sector.IsSet() && r.Experience.IsSet()
}

// Complete reports whether the whole assessment is ready: every statement
// rated and both sector and experience selected.
func Complete(s *Store, r Respondent) bool {
	return s.IsAllComplete() && r.ProfileComplete()
}

// Missing lists what still blocks completion, in display order.
func Missing(s *Store, r Respondent) []string {
	var out []string
	if !r.Sector.IsSet() {
		out = append(out, "sector")
	}
	if !r.Experience.IsSet() {
		out = append(out, "experience")
	}
	for _, cat := range s.Catalog().Categories {
		if !s.IsCategoryComplete(cat.Name) {
			out = append(out, cat.Name)
		}
	}
	return out
}
