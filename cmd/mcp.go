package cmd

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/llm"
	"github.com/abhisek/founderfit/internal/mcptools"
	"github.com/abhisek/founderfit/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve scoring and advice tools over MCP (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// stdout carries the protocol; logs go to stderr.
		slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}

		var events store.EventRepo
		if st, err := openStore(cmd); err != nil {
			slog.Warn("LLM requests will not be recorded", "error", err)
		} else {
			defer st.Close()
			events = st.EventRepo()
		}

		provider, err := llm.NewProviderFromEnv(cmd.Context(), events)
		if err != nil {
			slog.Warn("LLM provider not configured", "error", err)
		}
		svc := advice.NewService(provider, cfg.AdviceSettings())

		return server.ServeStdio(mcptools.NewServer(cat, svc, version))
	},
}
