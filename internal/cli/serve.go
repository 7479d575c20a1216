package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/prodsync/internal/adapters/http/api"
	"github.com/okian/prodsync/internal/domain/dedupe"
	"github.com/okian/prodsync/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Register the webhook and serve inbound notifications",
		Long: `Start the notification listener. When webhook_url is configured the
webhook registration is ensured first (idempotent; an existing registration
for the same URL is reused). The process runs until SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, svc, err := buildService(ctx)
	if err != nil {
		return err
	}
	log := logger.Named("serve")

	if cfg.WebhookURL != "" {
		outcome, err := svc.EnsureWebhook(ctx, cfg.WebhookURL, cfg.WebhookEvents)
		if err != nil {
			return err
		}
		log.Info(ctx, "webhook registration ensured", logger.String("outcome", string(outcome)))
	} else {
		log.Warn(ctx, "webhook_url not configured, skipping registration")
	}

	deduper := dedupe.New(dedupe.WithMaxSize(cfg.DedupeSize))

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, cfg.WebhookSecret, deduper)
	apiServer.Register(ctx, mux, cfg.WebhookPath)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("webhookPath", cfg.WebhookPath),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}
