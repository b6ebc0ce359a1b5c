package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type SummaryService struct {
	reader ports.LedgerReader
	clock  ports.Clock
}

func NewSummaryService(reader ports.LedgerReader, clock ports.Clock) *SummaryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SummaryService{reader: reader, clock: clock}
}

func (s *SummaryService) Current(ctx context.Context) (domain.Summary, error) {
	return s.Summary(ctx, s.clock.Now())
}

func (s *SummaryService) Summary(ctx context.Context, at time.Time) (domain.Summary, error) {
	monthStart, monthEnd := domain.MonthRange(at)

	total, err := s.reader.Total(ctx, monthStart, monthEnd)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load month total: %w", err)
	}

	days, err := s.reader.DailyTotals(ctx, monthStart, monthEnd)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load daily totals: %w", err)
	}

	weekStart, weekEnd := domain.TrailingWeek(at)
	week, err := s.reader.DailyTotals(ctx, weekStart, weekEnd)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load weekly totals: %w", err)
	}

	return domain.Summary{
		Month:      monthStart,
		MonthTotal: total,
		Days:       domain.FillDays(monthStart, monthEnd, days),
		Week:       domain.FillDays(weekStart, weekEnd, week),
	}, nil
}
