package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/prodsync/pkg/logger"
)

// NewBackfillCommand creates the backfill command.
func NewBackfillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Re-sync every known entity once",
		Long: `Run a one-shot full sweep: page through all entities and feed each one
through the sync workflow. Per-entity failures are logged and skipped; only a
failed page listing aborts the sweep. Intended to run standalone, not next to
live traffic.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, svc, err := buildService(ctx)
			if err != nil {
				return err
			}

			processed, err := svc.BackfillAll(ctx)
			if err != nil {
				logger.Get().Error(ctx, "backfill aborted",
					logger.Int("processed", processed), logger.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backfill complete: %d entities processed\n", processed)
			return nil
		},
	}
}
