package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the savings table and its index when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := app.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer ledger.Close()

			if err := ledger.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("ensure ledger schema: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "savings table ready (%s)\n", ledger.Dialect())
			return err
		},
	}
}
