package advice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/scoring"
)

// SystemPrompt frames every advice request.
const SystemPrompt = `You are an expert in entrepreneurship and entrepreneurial skills development in Senegal. You provide precise analyses and personalised recommendations.`

const notSpecified = "Not specified"

// Input is what advice is generated from.
type Input struct {
	Respondent assessment.Respondent
	Result     scoring.Result
}

// BuildPrompt renders the user message for kind.
func BuildPrompt(kind Kind, in Input) (string, error) {
	switch kind {
	case Summary:
		return buildSummaryMessage(in), nil
	case Training, Strategy, Mentoring, Funding, Full:
		return buildDetailedMessage(kind, in), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

func writeScores(b *strings.Builder, scores []scoring.CategoryScore) {
	for _, s := range scores {
		b.WriteString(fmt.Sprintf("- %s: %.2f/5\n", s.Category, s.Score))
	}
}

func buildSummaryMessage(in Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Entrepreneur profile: %s\n", in.Result.Tier.Label))
	b.WriteString(fmt.Sprintf("Overall score: %.2f/5\n", in.Result.Overall))
	b.WriteString(fmt.Sprintf("Sector: %s\n", in.Respondent.Sector.Or(notSpecified)))
	b.WriteString(fmt.Sprintf("Experience: %s\n", in.Respondent.Experience.Or(notSpecified)))
	b.WriteString("\nDetailed scores:\n")
	writeScores(&b, in.Result.Scores)

	b.WriteString(`
As an entrepreneurship expert in Senegal, give 3-4 short, concrete recommendations (150 words maximum) for this entrepreneur based on their profile.

Focus on:
1. The 2 weakest skills to improve first
2. One concrete action to put in place within the next 30 days
3. One useful resource or contact in Senegal

Be direct, actionable and adapted to the Senegalese context.`)

	return b.String()
}

func writeContext(b *strings.Builder, in Input) {
	r := in.Respondent

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = notSpecified
	}
	age := notSpecified
	if r.Age != nil {
		age = strconv.Itoa(*r.Age)
	}

	b.WriteString("Entrepreneur context:\n")
	b.WriteString(fmt.Sprintf("- Name: %s\n", name))
	b.WriteString(fmt.Sprintf("- Age: %s\n", age))
	b.WriteString(fmt.Sprintf("- Sector: %s\n", r.Sector.Or(notSpecified)))
	b.WriteString(fmt.Sprintf("- Experience: %s\n", r.Experience.Or(notSpecified)))
	b.WriteString(fmt.Sprintf("- Identified profile: %s\n", in.Result.Tier.Label))
	b.WriteString("\nScores by skill:\n")
	writeScores(b, in.Result.Scores)
}

const daarayName = "Daaray Jàmbaar Yi (CBAO Groupe Attijariwafa bank)"

// resourceNotes describes the support centre in the terms relevant to each
// kind of advice.
var resourceNotes = map[Kind]string{
	Training:  "support centre offering entrepreneurship training, personalised coaching, help building projects and business plans, and easier access to financing. Well suited to getting started in entrepreneurship, specialised modules (business model, company management, financial education) and support for very small, small and medium businesses.",
	Strategy:  "for personalised coaching, mentoring by banking professionals, advice on improving access to financing, and networking with business leaders and investors.",
	Mentoring: "offers mentoring by banking and business professionals, individual follow-up of project owners, meeting sessions with business leaders and investors, and a platform for exchange between entrepreneurs.",
	Funding:   "eases access to credit and banking services, preferential CBAO partnerships for very small, small and medium businesses, information on banking products suited to small structures, and help preparing a suitable credit or financing application.",
	Full:      "full support centre offering entrepreneurship training, personalised coaching, mentoring by banking professionals, help building projects and business plans, easier access to financing, and networking with entrepreneurs and investors. Suited to every entrepreneur profile (young project owners, very small, small and medium businesses, women entrepreneurs).",
}

func buildDetailedMessage(kind Kind, in Input) string {
	var b strings.Builder
	writeContext(&b, in)
	b.WriteString("\n")

	resource := fmt.Sprintf("- %s: %s", daarayName, resourceNotes[kind])

	switch kind {
	case Training:
		b.WriteString(`As an expert in entrepreneurship training in Senegal, propose a detailed, personalised training plan for this entrepreneur.
Include:
1. The priority areas to develop
2. Specific recommended courses (available in Senegal)
3. A suggested schedule over 6-12 months
4. Local resources (Senegalese organisations, programmes and institutions)

SPECIFIC RESOURCES TO MENTION IF RELEVANT:
`)
		b.WriteString(resource)

	case Strategy:
		b.WriteString(`As an expert in entrepreneurial development, propose a tailored development strategy for this Senegalese entrepreneur.
Include:
1. SMART short-term goals (3 months)
2. Medium-term goals (6-12 months)
3. Concrete, measurable actions
4. Success indicators
5. Opportunities specific to the Senegalese context

SPECIFIC RESOURCES TO MENTION IF RELEVANT:
`)
		b.WriteString(resource)

	case Mentoring:
		b.WriteString(`Recommend a mentoring programme suited to this Senegalese entrepreneur.
Include:
1. The ideal mentor (profile, experience)
2. The areas where mentoring is most needed
3. Mentoring programmes available in Senegal
4. How to get the most out of mentoring
5. Local support structures (incubators, accelerators)

SPECIFIC RESOURCES TO MENTION IF RELEVANT:
`)
		b.WriteString(resource)

	case Funding:
		b.WriteString(`Identify the funding opportunities suited to this Senegalese entrepreneur.
Include:
1. The recommended types of funding for this profile
2. Funding programmes available in Senegal
3. Typical eligibility criteria
4. How to strengthen an application
5. Alternatives to traditional funding

SPECIFIC RESOURCES TO MENTION IF RELEVANT:
`)
		b.WriteString(resource)

	case Full:
		sector := in.Respondent.Sector.Or(notSpecified)
		b.WriteString(`As an entrepreneurship expert in Senegal, provide a complete analysis and overall recommendations for this entrepreneur.

Structure your analysis as follows:

1. **PROFILE ANALYSIS**
   - Main strengths
   - Critical weaknesses
   - Development opportunities

2. **PRIORITY RECOMMENDATIONS**
   - Top 3 skills to develop urgently
   - Concrete actions for each skill
   - Recommended deadlines

3. **90-DAY ACTION PLAN**
   - Weeks 1-4: Immediate actions
   - Weeks 5-8: Consolidation
   - Weeks 9-12: Evaluation and adjustment

4. **RESOURCES SPECIFIC TO SENEGAL**
   - Support organisations
   - Training programmes
   - Entrepreneur networks
   - Funding opportunities

PRIORITY RESOURCE TO MENTION:
`)
		b.WriteString(resource)
		b.WriteString(fmt.Sprintf(`

5. **SECTOR-SPECIFIC ADVICE** (%s)
   - Specifics of the sector in Senegal
   - Best practices
   - Pitfalls to avoid

Be concrete, actionable and adapted to the Senegalese context.`, sector))
	}

	return b.String()
}

// buildHighlightsMessage asks for the structured summary.
func buildHighlightsMessage(in Input) string {
	var b strings.Builder
	writeContext(&b, in)

	b.WriteString("\nWeakest skills:\n")
	writeScores(&b, in.Result.Weaknesses)

	b.WriteString(`
Instructions:
Pick the 2 skills this entrepreneur should work on first, one concrete action for the next 30 days, and one resource or contact in Senegal that helps with it. Keep each field to one sentence.`)

	return b.String()
}
