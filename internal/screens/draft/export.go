package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/report"
)

// Document builds the export document for the current state.
func (d *Draft) Document(at time.Time) report.Document {
	return report.Document{
		GeneratedAt: at,
		Respondent:  d.Respondent,
		Result:      d.Result(),
		Summary:     d.Advice[advice.Summary],
	}
}

// ExportReport writes the Markdown report into dir and returns its path.
func (d *Draft) ExportReport(dir string, at time.Time) (string, error) {
	text, err := report.Render(report.Markdown, d.Document(at))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return writeFile(dir, report.Filename(report.Markdown, at), text)
}

// ExportAdvice writes one piece of generated advice as a text file.
func (d *Draft) ExportAdvice(dir string, kind advice.Kind, at time.Time) (string, error) {
	text, ok := d.Advice[kind]
	if !ok || text == "" {
		return "", fmt.Errorf("no %s advice generated yet", kind)
	}
	return writeFile(dir, kind.Filename(at), text)
}

func writeFile(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
