package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	app := &app{}
	var opts loadOptions

	rootCmd := &cobra.Command{
		Use:           "whatsavings",
		Short:         "WhatsApp savings bot: record \"add <amount>\" messages into the savings ledger",
		Long:          "whatsavings keeps a linked WhatsApp session alive, records deposits sent by the authorized number as \"add 10k\" style messages, and replies with a confirmation.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.load(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default $HOME/.config/whatsavings/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Dotenv file to load before reading the environment (default ./.env when present)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newAuthCmd(app),
		newParseCmd(app),
		newMigrateCmd(app),
		newSummaryCmd(app),
	)

	return rootCmd
}
