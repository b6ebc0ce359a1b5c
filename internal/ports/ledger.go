package ports

import (
	"context"
	"time"

	"github.com/bnema/whatsavings/internal/domain"
)

type Ledger interface {
	Insert(ctx context.Context, record domain.DepositRecord) error
}

type LedgerReader interface {
	Total(ctx context.Context, from time.Time, to time.Time) (int64, error)
	DailyTotals(ctx context.Context, from time.Time, to time.Time) ([]domain.DailyTotal, error)
}
