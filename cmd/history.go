package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.AssessmentRepo().List(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No assessments stored yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-24s  %-7s  %s\n", "ID", "Date", "Name", "Overall", "Profile")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range records {
			name := r.Name
			if r.Company != "" {
				name += " (" + r.Company + ")"
			}
			fmt.Printf("%-36s  %-16s  %-24s  %7.2f  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(name, 24),
				r.Overall,
				r.Level,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
}
