package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const (
	defaultHandshakeTimeout = 15 * time.Second
	defaultSendTimeout      = 20 * time.Second
	defaultPongWait         = 60 * time.Second
	writeWait               = 10 * time.Second
	clientName              = "whatsavings"
)

type Config struct {
	URL              string
	Token            string
	HandshakeTimeout time.Duration
	SendTimeout      time.Duration
	PongWait         time.Duration
}

// Transport dials the gateway over a websocket. Each Dial yields a fresh
// session; the gateway resumes the paired device from the credentials sent in
// the hello frame or starts pairing when none are sent.
type Transport struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *zap.Logger
}

var _ ports.Transport = (*Transport)(nil)

func NewTransport(cfg Config, logger *zap.Logger) (*Transport, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("%w: gateway url is required", domain.ErrInvalidConfig)
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = defaultPongWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Transport{
		cfg:    cfg,
		dialer: &websocket.Dialer{Proxy: http.ProxyFromEnvironment, HandshakeTimeout: cfg.HandshakeTimeout},
		logger: logger,
	}, nil
}

func (t *Transport) Dial(ctx context.Context, credentials *domain.Credentials) (ports.Session, error) {
	header := http.Header{}
	if t.cfg.Token != "" {
		header.Set("Authorization", "Bearer "+t.cfg.Token)
	}

	conn, resp, err := t.dialer.DialContext(ctx, t.cfg.URL, header)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			return nil, &domain.DisconnectError{
				Reason: domain.TransientDisconnect(fmt.Sprintf("gateway handshake: %s: %v", resp.Status, err)),
			}
		}
		return nil, fmt.Errorf("dial gateway: %w", err)
	}

	hello := frame{Type: frameHello, Client: clientName}
	if credentials.Usable() {
		hello.Account = credentials.Account
		hello.Credentials = credentials.Data
	}

	s := newSession(conn, t.cfg, t.logger)
	if err := s.writeFrame(hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send hello: %w", err)
	}

	go s.readLoop()
	go s.pingLoop()

	return s, nil
}

// reasonFromReadError classifies the way the socket ended. Private close
// codes carry the gateway status; anything else is a transient drop.
func reasonFromReadError(err error) domain.DisconnectReason {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		if closeErr.Code >= closeCodeBase && closeErr.Code < closeCodeBase+1000 {
			return domain.ClassifyDisconnect(closeErr.Code-closeCodeBase, closeErr.Text)
		}
		return domain.TransientDisconnect(fmt.Sprintf("websocket closed with code %d %s", closeErr.Code, closeErr.Text))
	}

	return domain.TransientDisconnect(err.Error())
}
