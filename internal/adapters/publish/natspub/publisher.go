package natspub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const DefaultSubject = "whatsavings.deposits"

type conn interface {
	PublishMsg(msg *nats.Msg) error
}

// Publisher announces stored deposits on a NATS subject.
type Publisher struct {
	conn    conn
	subject string
}

var _ ports.DepositPublisher = (*Publisher)(nil)

func NewPublisher(c conn, subject string) *Publisher {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}

	return &Publisher{conn: c, subject: subject}
}

// Connect dials the server with unbounded reconnects; a deposit is never
// blocked on the broker being reachable.
func Connect(url string, name string) (*nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: nats url is required", domain.ErrInvalidConfig)
	}

	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}

	return nc, nil
}

func (p *Publisher) PublishDeposit(ctx context.Context, event domain.DepositEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode deposit event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Header.Set("Content-Type", "application/json")

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish deposit event to %s: %w", p.subject, err)
	}

	return nil
}
