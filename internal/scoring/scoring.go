// Package scoring derives per-category and overall averages from an
// assessment.Store and classifies the result into a profile tier.
// Every function is a pure read of its inputs.
package scoring

import (
	"sort"

	"github.com/abhisek/founderfit/internal/assessment"
)

// StrongThreshold is the category score from which a skill counts as a
// strong point.
const StrongThreshold = 4.0

// HighlightCount is the number of strengths and weaknesses reported.
const HighlightCount = 3

// CategoryScore pairs a category with its average rating.
type CategoryScore struct {
	Category string  `json:"category" yaml:"category"`
	Score    float64 `json:"score" yaml:"score"`
}

// ScoreCategory returns the mean of the present ratings in category, or
// exactly 0 when none are present.
func ScoreCategory(s *assessment.Store, category string) float64 {
	ratings := s.Ratings(category)
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += int(r)
	}
	return float64(sum) / float64(len(ratings))
}

// ScoreCategories returns every category score in catalog order.
func ScoreCategories(s *assessment.Store) []CategoryScore {
	cats := s.Catalog().Categories
	out := make([]CategoryScore, len(cats))
	for i, cat := range cats {
		out[i] = CategoryScore{Category: cat.Name, Score: ScoreCategory(s, cat.Name)}
	}
	return out
}

// Overall returns the unweighted mean of the category scores. Categories
// without ratings contribute their 0 like any other term, so the overall
// score is pulled down while an assessment is still in progress.
func Overall(scores []CategoryScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, cs := range scores {
		sum += cs.Score
	}
	return sum / float64(len(scores))
}

// Strengths returns up to n categories with the highest scores, best first.
// Equal scores keep catalog order.
func Strengths(scores []CategoryScore, n int) []CategoryScore {
	sorted := append([]CategoryScore(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return head(sorted, n)
}

// Weaknesses returns up to n categories with the lowest scores, worst
// first. Equal scores keep catalog order.
func Weaknesses(scores []CategoryScore, n int) []CategoryScore {
	sorted := append([]CategoryScore(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return head(sorted, n)
}

// ProgressPercent returns the share of answered statements, in [0,100].
func ProgressPercent(s *assessment.Store) float64 {
	total := s.Catalog().TotalStatements()
	if total == 0 {
		return 0
	}
	return float64(s.Answered()) / float64(total) * 100
}

// StrongCount returns how many categories score at least StrongThreshold.
func StrongCount(scores []CategoryScore) int {
	n := 0
	for _, cs := range scores {
		if cs.Score >= StrongThreshold {
			n++
		}
	}
	return n
}

func head(s []CategoryScore, n int) []CategoryScore {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
