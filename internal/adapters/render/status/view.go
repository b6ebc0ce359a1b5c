package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/whatsavings/internal/domain"
)

const weekBarWidth = 24

// Report is what the CLI asks to render. Either part may be nil. A positive
// Width clips every line to that many cells.
type Report struct {
	Summary *domain.Summary
	Auth    *AuthReport
	Width   int
}

type AuthReport struct {
	Session     string
	Backend     string
	Paired      bool
	Account     string
	UpdatedAt   time.Time
	LedgerReady bool
	LedgerError string
}

func renderView(report Report, s styles) string {
	var blocks []string
	if report.Auth != nil {
		blocks = append(blocks, renderAuth(*report.Auth, s))
	}
	if report.Summary != nil {
		blocks = append(blocks, renderSummary(*report.Summary, s))
	}
	if len(blocks) == 0 {
		return s.empty.Render("Nothing to show.")
	}

	for i := 1; i < len(blocks); i++ {
		blocks[i] = s.section.Render(blocks[i])
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderAuth(report AuthReport, s styles) string {
	lines := []string{
		s.title.Render("WhatsApp session"),
		s.header.Render(fmt.Sprintf("session: %s  backend: %s", report.Session, report.Backend)),
	}

	if report.Paired {
		line := s.ok.Render("paired")
		if report.Account != "" {
			line += " " + s.detail.Render(report.Account)
		}
		lines = append(lines, line)
		if !report.UpdatedAt.IsZero() {
			lines = append(lines, s.detail.Render("credentials updated "+report.UpdatedAt.In(domain.WIB).Format(domain.SavedAtLayout)+" WIB"))
		}
	} else {
		lines = append(lines, s.warning.Render("not paired")+" "+s.empty.Render("run the bot and scan the QR code"))
	}

	switch {
	case report.LedgerError != "":
		lines = append(lines, s.warning.Render("ledger unreachable: ")+s.detail.Render(report.LedgerError))
	case report.LedgerReady:
		lines = append(lines, s.ok.Render("ledger reachable"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummary(summary domain.Summary, s styles) string {
	lines := []string{
		s.title.Render("Savings " + summary.Month.Format("January 2006")),
		s.total.Render("Total: " + domain.FormatRupiah(summary.MonthTotal)),
		s.header.Render(fmt.Sprintf("deposit days this month: %d", depositDays(summary.Days))),
	}

	if len(summary.Week) == 0 {
		lines = append(lines, s.empty.Render("No deposits in the last 7 days."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	peak := int64(0)
	for _, day := range summary.Week {
		if day.Total > peak {
			peak = day.Total
		}
	}

	week := []string{s.header.Render("last 7 days")}
	for _, day := range summary.Week {
		week = append(week, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.dayLabel.Render(day.Label()),
			" ",
			renderBar(day.Total, peak, weekBarWidth, s),
			" ",
			s.amount.Render(domain.FormatRupiah(day.Total)),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, week...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(value int64, peak int64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if peak > 0 && value > 0 {
		filled = int(math.Round(float64(width) * float64(value) / float64(peak)))
		if filled < 1 {
			filled = 1
		}
		if filled > width {
			filled = width
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func depositDays(days []domain.DailyTotal) int {
	count := 0
	for _, day := range days {
		if day.Total > 0 {
			count++
		}
	}

	return count
}
