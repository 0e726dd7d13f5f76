// Package report renders a scored assessment for download and printing.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/scoring"
)

// Format is an export encoding.
type Format string

const (
	Markdown Format = "md"
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	Text     Format = "text"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a format name or a common alias ("markdown", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "csv":
		return CSV, nil
	case "text", "":
		return Text, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type served for a format.
func (f Format) ContentType() string {
	switch f {
	case Markdown:
		return "text/markdown; charset=utf-8"
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	case CSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file extension, without the dot.
func (f Format) Extension() string {
	if f == Text {
		return "txt"
	}
	return string(f)
}

// Filename names a report download, for example
// "founderfit_report_20260102.md".
func Filename(f Format, at time.Time) string {
	return fmt.Sprintf("founderfit_report_%s.%s", at.Format("20060102"), f.Extension())
}

// Document is everything an export contains.
type Document struct {
	GeneratedAt time.Time             `json:"generated_at" yaml:"generated_at"`
	Respondent  assessment.Respondent `json:"respondent" yaml:"respondent"`
	Result      scoring.Result        `json:"result" yaml:"result"`

	// Summary is the summary advice text, included verbatim when present.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Write encodes doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case Markdown:
		return WriteMarkdown(w, doc)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return WriteCSV(w, doc.Result)
	case Text:
		return WriteText(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Render is Write into a string.
func Render(f Format, doc Document) (string, error) {
	var b strings.Builder
	if err := Write(&b, f, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
