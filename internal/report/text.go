package report

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 20

// WriteText prints a compact plain-text summary for terminals.
func WriteText(w io.Writer, doc Document) error {
	r := doc.Result
	var b strings.Builder

	fmt.Fprintf(&b, "Profile:  %s (%.2f/5)\n", r.Tier.Label, r.Overall)
	fmt.Fprintf(&b, "          %s\n", r.Tier.Description)
	fmt.Fprintf(&b, "Action:   %s\n", r.Tier.Action)
	fmt.Fprintf(&b, "Answered: %d/%d (%.0f%%)\n\n", r.Answered, r.Total, r.Progress)

	width := 0
	for _, s := range r.Scores {
		width = max(width, len(s.Category))
	}
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "  %-*s  %s %.2f\n", width, s.Category, bar(s.Score/5), s.Score)
	}

	b.WriteString("\nStrengths:\n")
	for _, s := range r.Strengths {
		fmt.Fprintf(&b, "  + %s (%.2f)\n", s.Category, s.Score)
	}
	b.WriteString("Areas to develop:\n")
	for _, s := range r.Weaknesses {
		fmt.Fprintf(&b, "  - %s (%.2f)\n", s.Category, s.Score)
	}
	fmt.Fprintf(&b, "Strong points: %d\n", r.StrongCount)

	if s := strings.TrimSpace(doc.Summary); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func bar(frac float64) string {
	frac = min(max(frac, 0), 1)
	n := int(frac*barWidth + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
