package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/whatsavings/internal/adapters/render/status"
	"github.com/bnema/whatsavings/internal/application"
	"github.com/bnema/whatsavings/internal/domain"
)

type dailyTotalJSON struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
}

type summaryJSON struct {
	Month      string           `json:"month"`
	MonthTotal int64            `json:"month_total"`
	Days       []dailyTotalJSON `json:"days"`
	Week       []dailyTotalJSON `json:"week"`
}

func newSummaryCmd(app *app) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month total and the last 7 days of deposits (WIB calendar)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseSummaryDate(date, app.clock.Now())
			if err != nil {
				return err
			}

			ledger, err := app.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer ledger.Close()

			service := application.NewSummaryService(ledger, app.clock)

			var summary domain.Summary
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading savings...", func(ctx context.Context) error {
				var err error
				summary, err = service.Summary(ctx, at)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toSummaryJSON(summary))
			}

			rendered, err := statusadapter.Render(statusadapter.Report{Summary: &summary})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Reference day as YYYY-MM-DD (default today, WIB)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func parseSummaryDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.In(domain.WIB), nil
	}

	at, err := time.ParseInLocation(domain.DateLayout, raw, domain.WIB)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", raw)
	}

	return at, nil
}

func toSummaryJSON(summary domain.Summary) summaryJSON {
	out := summaryJSON{
		Month:      summary.Month.Format("2006-01"),
		MonthTotal: summary.MonthTotal,
		Days:       make([]dailyTotalJSON, 0, len(summary.Days)),
		Week:       make([]dailyTotalJSON, 0, len(summary.Week)),
	}
	for _, day := range summary.Days {
		out.Days = append(out.Days, dailyTotalJSON{Day: day.Day.Format(domain.DateLayout), Total: day.Total})
	}
	for _, day := range summary.Week {
		out.Week = append(out.Week, dailyTotalJSON{Day: day.Day.Format(domain.DateLayout), Total: day.Total})
	}

	return out
}
