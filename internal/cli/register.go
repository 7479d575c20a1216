package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Ensure the webhook registration exists",
		Long: `Run the idempotent webhook registrar once and report whether a
registration was created or already existed. serve does this automatically;
register exists for provisioning and for checking a deployment's wiring.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, svc, err := buildService(ctx)
			if err != nil {
				return err
			}
			if cfg.WebhookURL == "" {
				return errors.New("webhook_url must be configured")
			}

			outcome, err := svc.EnsureWebhook(ctx, cfg.WebhookURL, cfg.WebhookEvents)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "webhook %s: %s\n", outcome, cfg.WebhookURL)
			return nil
		},
	}
}
