package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/adapters/render/qr"
)

const lifecycleEventBuffer = 16

func newRunCmd(app *app) *cobra.Command {
	var skipSchema bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to WhatsApp and record deposits until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.ValidateRun(); err != nil {
				return err
			}
			defer func() { _ = app.logger.Sync() }()

			ctx := cmd.Context()

			ledger, err := app.openLedger(ctx)
			if err != nil {
				return err
			}
			defer ledger.Close()

			if !skipSchema {
				if err := ledger.EnsureSchema(ctx); err != nil {
					return fmt.Errorf("ensure ledger schema: %w", err)
				}
			}

			publisher, closePublisher, err := app.publisher()
			if err != nil {
				return err
			}
			defer closePublisher()

			credentials, closeStore, err := app.credentialRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			transport, err := app.transport()
			if err != nil {
				return err
			}

			manager := app.lifecycle(transport, credentials, app.pipeline(ledger, publisher))

			renderer := qr.NewRenderer(cmd.OutOrStdout(), app.logger.Named("session"))
			events := manager.Subscribe(lifecycleEventBuffer)
			followed := make(chan struct{})
			go func() {
				defer close(followed)
				renderer.Follow(events)
			}()

			app.logger.Info("whatsavings starting",
				zap.String("session", app.cfg.Session.Name),
				zap.String("ledger", string(ledger.Dialect())),
				zap.Bool("publish", publisher != nil),
				zap.Duration("retry_delay", app.cfg.Session.RetryDelay))

			err = manager.Run(ctx)
			<-followed

			if errors.Is(err, context.Canceled) {
				app.logger.Info("whatsavings stopped")
				return nil
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Do not create the savings table on startup")

	return cmd
}
