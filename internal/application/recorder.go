package application

import (
	"context"
	"fmt"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type Recorder struct {
	ledger ports.Ledger
	clock  ports.Clock
}

func NewRecorder(ledger ports.Ledger, clock ports.Clock) *Recorder {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Recorder{ledger: ledger, clock: clock}
}

// Record appends one deposit stamped with the current WIB second. Failures
// are returned as domain.ErrPersistenceFailed and never retried.
func (r *Recorder) Record(ctx context.Context, amount int64, source string, rawText string) (domain.DepositRecord, error) {
	record := domain.NewDepositRecord(r.clock.Now(), amount, source, rawText)

	if err := r.ledger.Insert(ctx, record); err != nil {
		return domain.DepositRecord{}, fmt.Errorf("%w: insert deposit: %w", domain.ErrPersistenceFailed, err)
	}

	return record, nil
}
