package assessment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/founderfit/internal/catalog"
)

func threeCategories() *catalog.Catalog {
	return &catalog.Catalog{Categories: []catalog.Category{
		{Name: "A", Statements: []string{"a1", "a2"}},
		{Name: "B", Statements: []string{"b1", "b2"}},
		{Name: "C", Statements: []string{"c1", "c2"}},
	}}
}

func fill(t *testing.T, s *Store, category string, value Rating) {
	t.Helper()
	for i := range s.Catalog().StatementCount(category) {
		if err := s.Set(category, i, value); err != nil {
			t.Fatalf("Set(%q, %d): %v", category, i, err)
		}
	}
}

func TestSet_ContractViolations(t *testing.T) {
	s := NewStore(threeCategories())

	tests := []struct {
		name     string
		category string
		index    int
		value    Rating
		want     error
	}{
		{"unknown category", "Z", 0, 3, ErrUnknownCategory},
		{"negative index", "A", -1, 3, ErrIndexOutOfRange},
		{"index past end", "A", 2, 3, ErrIndexOutOfRange},
		{"zero rating", "A", 0, 0, ErrInvalidRating},
		{"rating above max", "A", 0, 6, ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(tt.category, tt.index, tt.value)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Set() error = %v, want %v", err, tt.want)
			}
		})
	}
	if s.Answered() != 0 {
		t.Fatalf("rejected writes must not be stored, got %d answered", s.Answered())
	}
}

func TestSet_Overwrites(t *testing.T) {
	s := NewStore(threeCategories())
	if err := s.Set("A", 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("A", 0, 5); err != nil {
		t.Fatal(err)
	}
	r, ok := s.Get("A", 0)
	if !ok || r != 5 {
		t.Fatalf("Get = %d, %v; want 5, true", r, ok)
	}
	if s.Answered() != 1 {
		t.Fatalf("Answered = %d, want 1", s.Answered())
	}
}

func TestGet_Unanswered(t *testing.T) {
	s := NewStore(threeCategories())
	if _, ok := s.Get("A", 1); ok {
		t.Fatal("expected unanswered slot")
	}
}

func TestCompletion(t *testing.T) {
	s := NewStore(threeCategories())
	if s.IsCategoryComplete("A") {
		t.Fatal("empty category must not be complete")
	}
	if s.IsCategoryComplete("missing") {
		t.Fatal("unknown category must not be complete")
	}

	fill(t, s, "A", 4)
	fill(t, s, "B", 4)
	if !s.IsCategoryComplete("A") {
		t.Fatal("A should be complete")
	}
	if s.IsAllComplete() {
		t.Fatal("C is still incomplete")
	}

	if err := s.Set("C", 0, 1); err != nil {
		t.Fatal(err)
	}
	if s.IsAllComplete() {
		t.Fatal("one statement still unanswered")
	}
	if err := s.Set("C", 1, 1); err != nil {
		t.Fatal(err)
	}
	if !s.IsAllComplete() {
		t.Fatal("every statement answered")
	}
}

func TestNextIncompleteCategory(t *testing.T) {
	s := NewStore(threeCategories())

	tests := []struct {
		after string
		want  string
	}{
		{"", "A"},
		{"A", "B"},
		{"B", "C"},
		{"C", "A"},
		{"unknown", "A"},
	}
	for _, tt := range tests {
		got, ok := s.NextIncompleteCategory(tt.after)
		if !ok || got != tt.want {
			t.Errorf("NextIncompleteCategory(%q) = %q, %v; want %q", tt.after, got, ok, tt.want)
		}
	}
}

func TestNextIncompleteCategory_SkipsCompleteAndWraps(t *testing.T) {
	s := NewStore(threeCategories())
	fill(t, s, "A", 3)
	fill(t, s, "C", 3)

	got, ok := s.NextIncompleteCategory("B")
	if !ok || got != "B" {
		t.Fatalf("after B: got %q, %v; want B after a full wrap", got, ok)
	}

	fill(t, s, "B", 3)
	if got, ok := s.NextIncompleteCategory("A"); ok {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestAnsweredIn_AndRatings(t *testing.T) {
	s := NewStore(threeCategories())
	_ = s.Set("B", 1, 5)
	if s.AnsweredIn("B") != 1 || s.AnsweredIn("A") != 0 {
		t.Fatal("AnsweredIn mismatch")
	}
	got := s.Ratings("B")
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("Ratings(B) = %v", got)
	}
}

func TestAnswers_RoundTrip(t *testing.T) {
	c := threeCategories()
	s := NewStore(c)
	_ = s.Set("A", 0, 4)
	_ = s.Set("C", 1, 2)

	data, err := json.Marshal(s.Answers())
	if err != nil {
		t.Fatal(err)
	}

	var a Answers
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatal(err)
	}
	if a["A"][1] != nil {
		t.Fatal("unanswered slot must serialize as null")
	}

	restored, err := StoreFromAnswers(c, a)
	if err != nil {
		t.Fatal(err)
	}
	if r, ok := restored.Get("C", 1); !ok || r != 2 {
		t.Fatalf("restored C[1] = %d, %v", r, ok)
	}
	if restored.Answered() != 2 {
		t.Fatalf("Answered = %d, want 2", restored.Answered())
	}
}

func TestRestore_RejectsInvalidAndKeepsState(t *testing.T) {
	s := NewStore(threeCategories())
	_ = s.Set("A", 0, 1)

	bad := Rating(9)
	err := s.Restore(Answers{"A": {nil, &bad}})
	if !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if r, ok := s.Get("A", 0); !ok || r != 1 {
		t.Fatal("failed restore must leave the store unchanged")
	}
}
