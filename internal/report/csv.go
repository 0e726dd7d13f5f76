package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/abhisek/founderfit/internal/scoring"
)

// WriteCSV writes the two-column score table: a "category,score" header,
// one row per category in catalog order.
func WriteCSV(w io.Writer, r scoring.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "score"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, s := range r.Scores {
		if err := cw.Write([]string{s.Category, strconv.FormatFloat(s.Score, 'f', 2, 64)}); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
