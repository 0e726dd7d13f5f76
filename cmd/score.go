package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/report"
	"github.com/abhisek/founderfit/internal/scoring"
)

// answersFile is the input of the score command:
//
//	respondent:
//	  name: Awa
//	  sector: Agriculture
//	  experience: 1-3 years
//	answers:
//	  Leadership: [4, 5, ~, 3, 4, 4]
type answersFile struct {
	Respondent assessment.Respondent `yaml:"respondent"`
	Answers    assessment.Answers    `yaml:"answers"`
}

func readAnswers(c *catalog.Catalog, path string) (assessment.Respondent, *assessment.Store, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return assessment.Respondent{}, nil, fmt.Errorf("read answers: %w", err)
	}

	var f answersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return assessment.Respondent{}, nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if err := f.Respondent.Validate(); err != nil {
		return assessment.Respondent{}, nil, err
	}
	st, err := assessment.StoreFromAnswers(c, f.Answers)
	if err != nil {
		return assessment.Respondent{}, nil, err
	}
	return f.Respondent, st, nil
}

var scoreCmd = &cobra.Command{
	Use:   "score <answers.yaml>",
	Short: "Score an answers file and print the result",
	Long: "Score an answers file (YAML with 'respondent' and 'answers' sections, '-' for stdin).\n" +
		"Unanswered statements count as zero, as in the interactive assessment.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cmd, nil)
		if err != nil {
			return err
		}
		r, st, err := readAnswers(cat, args[0])
		if err != nil {
			return err
		}

		doc := report.Document{
			GeneratedAt: time.Now(),
			Respondent:  r,
			Result:      scoring.Evaluate(st),
		}
		if err := writeReport(cmd, format, doc); err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			return saveScored(cmd, r, st)
		}
		return nil
	},
}

func saveScored(cmd *cobra.Command, r assessment.Respondent, st *assessment.Store) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := history.Save(context.Background(), s.AssessmentRepo(), history.Submission{Respondent: r, Store: st})
	if errors.Is(err, history.ErrIncomplete) {
		return fmt.Errorf("not saved: %w", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved as %s\n", rec.ID)
	return nil
}

// writeReport renders doc to --out, or stdout when the flag is empty.
func writeReport(cmd *cobra.Command, format report.Format, doc report.Document) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return report.Write(os.Stdout, format, doc)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := report.Write(f, format, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	return nil
}

func init() {
	scoreCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml, csv or md")
	scoreCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")
	scoreCmd.Flags().Bool("save", false, "Store the assessment in the history (must be complete)")
}
