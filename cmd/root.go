package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/config"
	"github.com/abhisek/founderfit/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "founderfit",
	Short: "Entrepreneurial self-assessment with AI advice",
	Long: "FounderFit: rate yourself on six entrepreneurial skill areas, see your profile\n" +
		"and development plan, and get advice tailored to entrepreneurs in Senegal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOUNDERFIT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a founderfit.yaml config file")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML statement catalog (default: built-in)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, or the default
// locations when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		slog.Debug("config loaded", "file", cfg.File)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then FOUNDERFIT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return "", err
		}
		if cfg.DB != "" {
			return cfg.DB, store.EnsureDir(cfg.DB)
		}
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog reads the catalog named by --catalog, falling back to the
// config file setting and then the built-in reference statements.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" && cfg != nil {
		path = cfg.Catalog
	}
	c, err := catalog.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// warn prints a one-line notice on stderr.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
