package scoring

import "github.com/abhisek/founderfit/internal/assessment"

// Result is everything the presentation and export layers show about an
// assessment at one point in time.
type Result struct {
	Scores      []CategoryScore `json:"scores" yaml:"scores"`
	Overall     float64         `json:"overall" yaml:"overall"`
	Tier        Tier            `json:"tier" yaml:"tier"`
	Strengths   []CategoryScore `json:"strengths" yaml:"strengths"`
	Weaknesses  []CategoryScore `json:"weaknesses" yaml:"weaknesses"`
	StrongCount int             `json:"strong_count" yaml:"strong_count"`
	Answered    int             `json:"answered" yaml:"answered"`
	Total       int             `json:"total" yaml:"total"`
	Progress    float64         `json:"progress" yaml:"progress"`
	Grid        []GridRow       `json:"grid" yaml:"grid"`
}

// Evaluate computes a Result from the current store contents.
func Evaluate(s *assessment.Store) Result {
	scores := ScoreCategories(s)
	overall := Overall(scores)

	return Result{
		Scores:      scores,
		Overall:     overall,
		Tier:        Classify(overall),
		Strengths:   Strengths(scores, HighlightCount),
		Weaknesses:  Weaknesses(scores, HighlightCount),
		StrongCount: StrongCount(scores),
		Answered:    s.Answered(),
		Total:       s.Catalog().TotalStatements(),
		Progress:    ProgressPercent(s),
		Grid:        DevelopmentGrid(overall),
	}
}
