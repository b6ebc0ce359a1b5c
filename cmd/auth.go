package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/whatsavings/internal/adapters/render/status"
	"github.com/bnema/whatsavings/internal/domain"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect or reset the stored WhatsApp session credentials",
	}

	cmd.AddCommand(newAuthStatusCmd(app), newAuthResetCmd(app))

	return cmd
}

func newAuthStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the session is paired and the ledger is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeStore, err := app.credentialRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			report := statusadapter.AuthReport{
				Session: app.cfg.Session.Name,
				Backend: app.cfg.Secrets.Backend,
			}

			credentials, err := repo.Load(cmd.Context())
			switch {
			case errors.Is(err, domain.ErrCredentialsNotFound):
			case err != nil:
				return err
			case credentials.Usable():
				report.Paired = true
				report.Account = credentials.Account
				report.UpdatedAt = credentials.UpdatedAt
			}

			if strings.TrimSpace(app.cfg.Ledger.DSN) != "" {
				ledger, err := app.openLedger(cmd.Context())
				if err != nil {
					report.LedgerError = err.Error()
				} else {
					report.LedgerReady = true
					_ = ledger.Close()
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			rendered, err := statusadapter.Render(statusadapter.Report{Auth: &report})
			if err != nil {
				return fmt.Errorf("render auth status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newAuthResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete stored credentials so the next run pairs again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeStore, err := app.credentialRepository()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := repo.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("reset credentials: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "credentials cleared for session %q\n", app.cfg.Session.Name)
			return err
		},
	}
}
