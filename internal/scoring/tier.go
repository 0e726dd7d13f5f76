package scoring

// Level orders the profile tiers from lowest to highest.
type Level int

const (
	Beginner Level = iota
	Emerging
	Intermediate
	Advanced
	Excellence
)

// String returns the tier label.
func (l Level) String() string {
	switch l {
	case Beginner:
		return "Beginner"
	case Emerging:
		return "Emerging"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Excellence:
		return "Excellence"
	default:
		return "Unknown"
	}
}

// Tier is a qualitative profile attached to a band of overall scores.
// A score belongs to a tier when Threshold <= score; Ceiling is the
// threshold of the next tier up (MaxScore for the top tier).
type Tier struct {
	Level       Level   `json:"level" yaml:"level"`
	Label       string  `json:"label" yaml:"label"`
	Description string  `json:"description" yaml:"description"`
	Color       string  `json:"color" yaml:"color"`
	Action      string  `json:"action" yaml:"action"`
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Ceiling     float64 `json:"ceiling" yaml:"ceiling"`
}

// MaxScore is the upper bound of any category or overall score.
const MaxScore = 5.0

// tiers is ordered from the highest threshold to the lowest; the last
// threshold is 0 so every score in [0,5] matches.
var tiers = []Tier{
	{Excellence, "Excellence", "Entrepreneur with highly developed skills", "#2E7D32", "Sharing expertise", 4.0, MaxScore},
	{Advanced, "Advanced", "Experienced entrepreneur with some areas for improvement", "#558B2F", "Advanced coaching", 3.5, 4.0},
	{Intermediate, "Intermediate", "Developing entrepreneur with significant potential", "#F9A825", "Mentoring", 3.0, 3.5},
	{Emerging, "Emerging", "Beginner entrepreneur needing targeted support", "#EF6C00", "Targeted support", 2.5, 3.0},
	{Beginner, "Beginner", "Entrepreneur needing comprehensive support", "#C62828", "Comprehensive training", 0, 2.5},
}

// Tiers returns the tier table, highest threshold first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Classify returns the first tier, from the highest threshold down, whose
// threshold is <= score. A score equal to a threshold belongs to that tier.
func Classify(score float64) Tier {
	for _, t := range tiers {
		if score >= t.Threshold {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// GridRow is one line of the development grid: how far the overall score
// has progressed through a tier's band.
type GridRow struct {
	Tier     Tier    `json:"tier" yaml:"tier"`
	Progress float64 `json:"progress" yaml:"progress"`
	Current  bool    `json:"current" yaml:"current"`
}

// DevelopmentGrid places the overall score against every tier band,
// lowest tier first. A band is 100% once the score reaches its ceiling,
// proportional inside the band, and 0% below it.
func DevelopmentGrid(overall float64) []GridRow {
	current := Classify(overall).Level

	rows := make([]GridRow, 0, len(tiers))
	for i := len(tiers) - 1; i >= 0; i-- {
		t := tiers[i]
		rows = append(rows, GridRow{
			Tier:     t,
			Progress: bandProgress(overall, t.Threshold, t.Ceiling),
			Current:  t.Level == current,
		})
	}
	return rows
}

func bandProgress(score, lo, hi float64) float64 {
	switch {
	case score >= hi:
		return 100
	case score >= lo:
		return (score - lo) / (hi - lo) * 100
	default:
		return 0
	}
}
