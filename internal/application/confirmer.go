package application

import (
	"context"
	"fmt"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

func FormatConfirmation(amount int64) string {
	return fmt.Sprintf("✅ Tercatat: %s (WIB)", domain.FormatRupiah(amount))
}

type Confirmer struct{}

func NewConfirmer() *Confirmer {
	return &Confirmer{}
}

// Confirm sends the acknowledgment through the given session. A missing
// session is reported as domain.ErrSessionNotOpen; nothing is queued.
func (c *Confirmer) Confirm(ctx context.Context, session ports.MessageSender, to string, amount int64) error {
	if session == nil {
		return domain.ErrSessionNotOpen
	}

	if err := session.SendText(ctx, to, FormatConfirmation(amount)); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}

	return nil
}
