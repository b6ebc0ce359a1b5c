package ports

import (
	"context"

	"github.com/bnema/whatsavings/internal/domain"
)

type DepositPublisher interface {
	PublishDeposit(ctx context.Context, event domain.DepositEvent) error
}
