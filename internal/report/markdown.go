package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/abhisek/founderfit/internal/assessment"
)

const notSpecified = "N/A"

var markdownTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score":   func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"percent": func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) },
	"na":      orNA,
	"age":     ageText,
	"sel":     func(s assessment.Selection) string { return s.Or(notSpecified) },
	"trim":    strings.TrimSpace,
	"inline":  inline,
}).Parse(`# Entrepreneurial Profile Report

{{.GeneratedAt.Format "2006-01-02 15:04"}}

## Information

- Name: {{inline (na .Respondent.Name)}}
- Company: {{inline (na .Respondent.Company)}}
- Age: {{age .Respondent.Age}}
- Sector: {{inline (sel .Respondent.Sector)}}
- Experience: {{inline (sel .Respondent.Experience)}}

## Profile Summary

**Profile: {{.Result.Tier.Label}}** ({{score .Result.Overall}}/5)

{{.Result.Tier.Description}}. Recommended action: {{.Result.Tier.Action}}.

Strong points: {{.Result.StrongCount}} of {{len .Result.Scores}} skills at 4.0 or above.
{{- if lt .Result.Answered .Result.Total}}

_Incomplete: {{.Result.Answered}} of {{.Result.Total}} statements answered; unanswered statements count as zero._
{{- end}}

## Scores by Skill

| Skill | Score |
|---|---|
{{range .Result.Scores}}| {{inline .Category}} | {{score .Score}}/5 |
{{end}}
## Development Grid

| Level | Progress | |
|---|---|---|
{{range .Result.Grid}}| {{.Tier.Label}} | {{percent .Progress}}% | {{if .Current}}current{{end}} |
{{end}}
{{- with trim .Summary}}
## Summary Recommendations

{{.}}
{{end}}`))

// WriteMarkdown renders the human-readable report.
func WriteMarkdown(w io.Writer, doc Document) error {
	if err := markdownTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("render markdown report: %w", err)
	}
	return nil
}

var inlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`)

// inline keeps s on one line and inside its table cell.
func inline(s string) string {
	return inlineReplacer.Replace(s)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func ageText(age *int) string {
	if age == nil {
		return notSpecified
	}
	return strconv.Itoa(*age)
}
