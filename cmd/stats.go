package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/scoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.AssessmentRepo().Stats(context.Background())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if st.Count == 0 {
			fmt.Println("No assessments stored yet.")
			return nil
		}

		fmt.Printf("Assessments:     %d\n", st.Count)
		fmt.Printf("Average overall: %.2f (%s)\n", st.AverageOverall, scoring.Classify(st.AverageOverall).Label)
		fmt.Printf("Advice texts:    %d\n", st.AdviceCount)
		fmt.Printf("Latest:          %s\n", st.Latest.Local().Format("2006-01-02 15:04"))

		fmt.Println()
		fmt.Println("Profiles")
		fmt.Println(strings.Repeat("─", 40))
		for _, t := range scoring.Tiers() {
			n := st.ByLevel[t.Label]
			fmt.Printf("%-14s %4d  %s\n", t.Label, n, strings.Repeat("█", n*20/st.Count))
		}
		return nil
	},
}
