package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/config"
	"github.com/abhisek/founderfit/internal/llm"
	"github.com/abhisek/founderfit/internal/server"
	"github.com/abhisek/founderfit/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo, closeRepo, err := newSessionRepo(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeRepo()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			slog.Warn("LLM provider not configured", "error", err)
		} else if provider == nil {
			slog.Warn("no LLM API key found; advice endpoints will answer 503")
		}

		srv := server.NewServer(server.Options{
			Config:      cfg.Server,
			Catalog:     cat,
			Sessions:    repo,
			Advice:      advice.NewService(provider, cfg.AdviceSettings()),
			Assessments: st.AssessmentRepo(),
		})
		httpServer := srv.HTTPServer()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("HTTP server starting", "addr", httpServer.Addr, "sessions", cfg.Sessions.Backend)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("founderfit server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

// newSessionRepo builds the configured session store. The returned func
// releases its resources.
func newSessionRepo(ctx context.Context, cfg *config.Config) (sessions.Repo, func(), error) {
	if cfg.Sessions.Backend != "redis" {
		return sessions.NewMemoryRepo(cfg.Sessions.TTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	slog.Info("redis connected", "addr", cfg.Redis.Addr)
	return sessions.NewRedisRepo(client, cfg.Sessions.TTL), func() { _ = client.Close() }, nil
}
