package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codecompass/engine/internal/analyzer"
	"github.com/codecompass/engine/internal/config"
	"github.com/codecompass/engine/internal/logger"
	"github.com/codecompass/engine/internal/review"
	"github.com/codecompass/engine/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		cfgFile string
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg, "codecompass")

	reviewer, err := buildReviewer(cfg, log)
	if err != nil {
		return err
	}

	a := analyzer.New(analyzer.NewRegistryProvider(), log.Named("analyzer"))
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(a, reviewer, log.Named("http")).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr, "ai_provider", cfg.AI.Provider)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildReviewer selects the review backend from config. API keys come only
// from the environment, never from the config file.
func buildReviewer(cfg *config.Config, log hclog.Logger) (review.Service, error) {
	switch cfg.AI.Provider {
	case config.ProviderAzure:
		apiKey := os.Getenv("AZURE_OPENAI_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ai provider %q requires AZURE_OPENAI_KEY", cfg.AI.Provider)
		}
		svc, err := review.NewAzureService(cfg.AI.Endpoint, apiKey, cfg.AI.Deployment, log.Named("review"))
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.ProviderGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ai provider %q requires GEMINI_API_KEY", cfg.AI.Provider)
		}
		return review.NewGeminiService(cfg.AI.Endpoint, apiKey, cfg.AI.Model, cfg.AI.Timeout, log.Named("review")), nil
	default:
		return review.Disabled{}, nil
	}
}
