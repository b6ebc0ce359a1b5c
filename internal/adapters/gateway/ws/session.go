package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type session struct {
	conn        *websocket.Conn
	sendTimeout time.Duration
	pongWait    time.Duration
	logger      *zap.Logger

	events    chan ports.SessionEvent
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex

	mu      sync.Mutex
	open    bool
	pending map[string]chan error
}

var _ ports.Session = (*session)(nil)

func newSession(conn *websocket.Conn, cfg Config, logger *zap.Logger) *session {
	return &session{
		conn:        conn,
		sendTimeout: cfg.SendTimeout,
		pongWait:    cfg.PongWait,
		logger:      logger,
		events:      make(chan ports.SessionEvent, 32),
		done:        make(chan struct{}),
		pending:     map[string]chan error{},
	}
}

func (s *session) Events() <-chan ports.SessionEvent {
	return s.events
}

// SendText waits for the gateway to acknowledge the message. It fails with
// domain.ErrSessionNotOpen when the session is not open or ends meanwhile.
func (s *session) SendText(ctx context.Context, to string, text string) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return domain.ErrSessionNotOpen
	}
	id := uuid.NewString()
	ack := make(chan error, 1)
	s.pending[id] = ack
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	if err := s.writeFrame(frame{Type: frameSend, ID: id, To: to, Text: text}); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSessionNotOpen, err)
	}

	timer := time.NewTimer(s.sendTimeout)
	defer timer.Stop()

	select {
	case err := <-ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("send %s: no acknowledgment after %s", id, s.sendTimeout)
	case <-s.done:
		return domain.ErrSessionNotOpen
	}
}

func (s *session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.setOpen(false)

		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		s.writeMu.Unlock()

		err = s.conn.Close()
	})

	return err
}

func (s *session) readLoop() {
	defer close(s.events)
	defer s.failPending()

	_ = s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			s.emit(ports.SessionEvent{Kind: ports.SessionEventClosed, Reason: reasonFromReadError(err)})
			_ = s.conn.Close()
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.pongWait))

		if closed := s.handleFrame(data); closed {
			_ = s.conn.Close()
			return
		}
	}
}

func (s *session) handleFrame(data []byte) bool {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		s.emit(ports.SessionEvent{Kind: ports.SessionEventError, Err: fmt.Errorf("decode gateway frame: %w", err)})
		return false
	}

	switch f.Type {
	case frameQR:
		s.emit(ports.SessionEvent{Kind: ports.SessionEventPairing, PairingCode: f.Code})
	case frameOpen:
		s.setOpen(true)
		s.emit(ports.SessionEvent{Kind: ports.SessionEventOpened, Self: f.Self})
	case frameCreds:
		s.emit(ports.SessionEvent{
			Kind:        ports.SessionEventCredentials,
			Credentials: &domain.Credentials{Account: f.Account, Data: f.Credentials},
		})
	case frameMessage:
		if f.Message == nil {
			s.emit(ports.SessionEvent{Kind: ports.SessionEventError, Err: errors.New("message frame without message")})
			return false
		}
		s.emit(ports.SessionEvent{Kind: ports.SessionEventMessage, Message: f.Message})
	case frameAck:
		s.acknowledge(f.ID, f.Error)
	case frameError:
		s.emit(ports.SessionEvent{Kind: ports.SessionEventError, Err: fmt.Errorf("gateway: %s", f.Error)})
	case frameClose:
		s.setOpen(false)
		s.emit(ports.SessionEvent{Kind: ports.SessionEventClosed, Reason: domain.ClassifyDisconnect(f.Status, f.Reason)})
		return true
	default:
		s.emit(ports.SessionEvent{Kind: ports.SessionEventError, Err: fmt.Errorf("unknown gateway frame %q", f.Type)})
	}

	return false
}

func (s *session) acknowledge(id string, failure string) {
	s.mu.Lock()
	ack, ok := s.pending[id]
	s.mu.Unlock()
	if !ok {
		s.logger.Debug("acknowledgment for unknown send", zap.String("id", id))
		return
	}

	var err error
	if failure != "" {
		err = fmt.Errorf("gateway rejected send: %s", failure)
	}

	select {
	case ack <- err:
	default:
	}
}

func (s *session) failPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
	for _, ack := range s.pending {
		select {
		case ack <- domain.ErrSessionNotOpen:
		default:
		}
	}
}

func (s *session) pingLoop() {
	ticker := time.NewTicker(s.pongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			s.writeMu.Unlock()
			if err != nil {
				s.logger.Debug("gateway ping failed", zap.Error(err))
				return
			}
		}
	}
}

func (s *session) writeFrame(f frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", f.Type, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write %s frame: %w", f.Type, err)
	}

	return nil
}

// emit delivers an event unless the session was closed locally, in which
// case nobody is reading anymore.
func (s *session) emit(event ports.SessionEvent) {
	select {
	case s.events <- event:
	case <-s.done:
	}
}

func (s *session) setOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = open
}
