package catalog

// Category names of the reference catalog.
const (
	Leadership     = "Leadership"
	Management     = "Management & Delegation"
	Creativity     = "Creativity & Innovation"
	Networking     = "Networking & Relationships"
	Resilience     = "Resilience & Perseverance"
	FinancialSkill = "Financial Management"
)

// Default returns a fresh copy of the reference catalog: six categories of
// six statements each.
func Default() *Catalog {
	return &Catalog{Categories: []Category{
		{Name: Leadership, Statements: []string{
			"I easily take the initiative in a group",
			"I know how to motivate and inspire others",
			"I communicate my vision clearly and convincingly",
			"I can make difficult decisions",
			"I empower my team and encourage autonomy",
			"I foster collaboration and resolve conflicts effectively",
		}},
		{Name: Management, Statements: []string{
			"I easily delegate tasks to my team",
			"I trust others to accomplish important tasks",
			"I know how to organize and plan effectively",
			"I can follow several projects at the same time",
			"I clearly define priorities and deadlines",
			"I set up processes to track progress and quality",
		}},
		{Name: Creativity, Statements: []string{
			"I easily generate new ideas",
			"I like experimenting with new approaches",
			"I question the status quo",
			"I can identify unique opportunities",
			"I turn ideas into concrete solutions",
			"I watch the market and adapt my ideas quickly",
		}},
		{Name: Networking, Statements: []string{
			"I easily build professional relationships",
			"I maintain an active network of contacts",
			"I know how to use my network to reach my goals",
			"I take an active part in various communities",
			"I know how to sustain relationships over time",
			"I create strategic partnerships that benefit both parties",
		}},
		{Name: Resilience, Statements: []string{
			"I persist in the face of difficulties",
			"I keep my focus on long-term goals",
			"I bounce back quickly after a failure",
			"I stay positive in adversity",
			"I keep my composure under pressure",
			"I adapt my action plan to the unexpected without losing sight of my goals",
		}},
		{Name: FinancialSkill, Statements: []string{
			"I understand basic financial statements",
			"I know how to manage a budget effectively",
			"I can identify sources of funding",
			"I make informed financial decisions",
			"I plan cash flow over the medium term",
			"I can set profitable and competitive prices",
		}},
	}}
}

// Sectors is the fixed list of business sectors offered for selection.
// A respondent may also enter a custom sector.
var Sectors = []string{
	"Agriculture",
	"Commerce",
	"Services",
	"Technology",
	"Crafts",
	"Transport",
	"Education",
	"Health",
}

// ExperienceLevels is the fixed list of entrepreneurial experience levels.
var ExperienceLevels = []string{
	"None",
	"Less than 1 year",
	"1-3 years",
	"3-5 years",
	"More than 5 years",
}

// IsKnownSector reports whether s is one of the enumerated sectors.
func IsKnownSector(s string) bool {
	return contains(Sectors, s)
}

// IsExperienceLevel reports whether s is one of the enumerated levels.
func IsExperienceLevel(s string) bool {
	return contains(ExperienceLevels, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
