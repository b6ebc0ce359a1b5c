package qr

import (
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/domain"
)

const scanPrompt = "Scan this QR code from WhatsApp > Linked devices to pair:"

// Renderer prints pairing challenges as terminal QR codes and logs the rest
// of the lifecycle.
type Renderer struct {
	out    io.Writer
	logger *zap.Logger
}

func NewRenderer(out io.Writer, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{out: out, logger: logger}
}

func (r *Renderer) RenderPairing(code string) error {
	if _, err := fmt.Fprintln(r.out, scanPrompt); err != nil {
		return fmt.Errorf("write pairing prompt: %w", err)
	}

	qrterminal.GenerateHalfBlock(code, qrterminal.L, r.out)
	return nil
}

func (r *Renderer) Follow(events <-chan domain.LifecycleEvent) {
	for event := range events {
		switch event.Kind {
		case domain.LifecyclePairingChallenge:
			if err := r.RenderPairing(event.PairingCode); err != nil {
				r.logger.Warn("render pairing code", zap.Error(err))
			}
		case domain.LifecycleOpened:
			r.logger.Info("whatsapp connected", zap.String("self", event.Self))
		case domain.LifecycleClosed:
			fields := []zap.Field{
				zap.String("reason", event.Reason.String()),
				zap.Bool("reconnect", event.Recoverable()),
			}
			if event.Recoverable() {
				r.logger.Warn("whatsapp connection closed", fields...)
			} else {
				r.logger.Error("whatsapp logged out, run `whatsavings auth reset` and pair again", fields...)
			}
		}
	}
}
