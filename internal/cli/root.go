// Package cli wires the prodsync command tree.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/prodsync/internal/adapters/remote"
	"github.com/okian/prodsync/internal/app"
	"github.com/okian/prodsync/internal/config"
	"github.com/okian/prodsync/internal/domain/field"
	"github.com/okian/prodsync/pkg/logger"
)

// NewRootCommand creates the root command for the prodsync CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prodsync",
		Short: "Keeps the product-name field on features in sync",
		Long: `prodsync reacts to change notifications from the hierarchy service and
keeps a "Product name" custom field on every feature equal to the name of the
feature's resolved parent product.

Configuration is read from defaults, an optional YAML file (PRODSYNC_CONFIG)
and PRODSYNC_-prefixed environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewBackfillCommand())
	cmd.AddCommand(NewRegisterCommand())

	return cmd
}

// buildService loads configuration and assembles the sync service on top of a
// live gateway. Shared by every subcommand.
func buildService(ctx context.Context) (*config.Config, *app.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level, falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mode, err := field.ParseMode(cfg.FieldMode)
	if err != nil {
		return nil, nil, fmt.Errorf("field_mode: %w", err)
	}

	gw := remote.New(cfg.RemoteBaseURL, cfg.RemoteToken,
		remote.WithTimeout(time.Duration(cfg.RemoteTimeoutMS)*time.Millisecond),
	)
	svc := app.New(gw, cfg.FieldID, mode,
		app.WithLogger(logger.Named("sync")),
		app.WithPageSize(cfg.PageSize),
		app.WithMaxPages(cfg.MaxPages),
		app.WithPayloadDebug(cfg.DebugLogPayloads, cfg.RawPreviewBytes),
	)
	return cfg, svc, nil
}
