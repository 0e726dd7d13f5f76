package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/history"
	"github.com/abhisek/founderfit/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored assessment",
	Args:  cobra.ExactArgs(1),
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
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := history.Document(context.Background(), s.AssessmentRepo(), cat, args[0])
		if err != nil {
			return err
		}
		return writeReport(cmd, format, doc)
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "md", "Output format: md, json, yaml, csv or text")
	exportCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")
}
