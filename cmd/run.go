package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/app"
	"github.com/abhisek/founderfit/internal/llm"
	"github.com/abhisek/founderfit/internal/selfupdate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive self-assessment (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().Bool("no-splash", false, "Skip the welcome animation")
		c.Flags().String("out", ".", "Directory for exported reports and advice files")
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	opts := app.Options{Catalog: cat}
	opts.SkipWelcome, _ = cmd.Flags().GetBool("no-splash")
	opts.Dir, _ = cmd.Flags().GetString("out")

	st, err := openStore(cmd)
	if err != nil {
		// The questionnaire works without history.
		warn("%v; assessments will not be saved", err)
	} else {
		defer st.Close()
		opts.Assessments = st.AssessmentRepo()
	}

	var provider llm.Provider
	if st != nil {
		provider, err = llm.NewProviderFromEnv(ctx, st.EventRepo())
	} else {
		provider, err = llm.NewProviderFromEnv(ctx, nil)
	}
	switch {
	case err != nil:
		warn("LLM provider not configured: %v", err)
	case provider == nil:
		warn("no LLM API key found; advice will be unavailable (set FOUNDERFIT_DEEPSEEK_API_KEY)")
	}
	opts.Advice = advice.NewService(provider, cfg.AdviceSettings())
	opts.LatestVersion = latestVersion(ctx)

	// Nothing may write to the terminal while the alt screen is up.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return app.Run(opts)
}

// latestVersion returns a newer release tag, or "" when there is none or
// the check does not finish quickly.
func latestVersion(ctx context.Context) string {
	if version == devVersion {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
	defer cancel()

	updater, err := selfupdate.New(release)
	if err != nil {
		return ""
	}
	res, err := updater.Check(ctx, version)
	if err != nil || !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
