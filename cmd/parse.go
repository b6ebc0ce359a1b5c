package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/whatsavings/internal/domain"
)

type parseResult struct {
	Text       string `json:"text"`
	Recognized bool   `json:"recognized"`
	Amount     int64  `json:"amount"`
	Recordable bool   `json:"recordable"`
}

func newParseCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <message text>",
		Short: "Show how a message would be interpreted, without recording it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			parsed := app.parser().Parse(text)
			result := parseResult{
				Text:       text,
				Recognized: parsed.Recognized,
				Amount:     parsed.Amount,
				Recordable: parsed.Recognized && parsed.Amount > 0,
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			var line string
			switch {
			case !result.Recognized:
				line = "not a deposit command"
			case !result.Recordable:
				line = fmt.Sprintf("recognized, amount %d would be dropped", result.Amount)
			default:
				line = "deposit " + domain.FormatRupiah(result.Amount)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}
