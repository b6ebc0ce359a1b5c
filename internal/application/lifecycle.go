package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const DefaultRetryDelay = 3 * time.Second

type MessageHandler interface {
	HandleMessage(ctx context.Context, session ports.MessageSender, msg domain.RawMessage)
}

type MessageHandlerFunc func(ctx context.Context, session ports.MessageSender, msg domain.RawMessage)

func (f MessageHandlerFunc) HandleMessage(ctx context.Context, session ports.MessageSender, msg domain.RawMessage) {
	f(ctx, session, msg)
}

type LifecycleOption func(*LifecycleManager)

func WithRetryDelay(delay time.Duration) LifecycleOption {
	return func(m *LifecycleManager) {
		if delay > 0 {
			m.retryDelay = delay
		}
	}
}

func WithClock(clock ports.Clock) LifecycleOption {
	return func(m *LifecycleManager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithLogger(logger *zap.Logger) LifecycleOption {
	return func(m *LifecycleManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// LifecycleManager owns the single session of the process. It resumes from
// stored credentials or asks for pairing, persists every credential rotation
// and reconnects after a fixed delay unless the device was logged out.
type LifecycleManager struct {
	transport   ports.Transport
	credentials ports.CredentialStore
	handler     MessageHandler
	clock       ports.Clock
	logger      *zap.Logger
	retryDelay  time.Duration

	mu          sync.RWMutex
	status      domain.SessionStatus
	current     *domain.Credentials
	subscribers []chan domain.LifecycleEvent

	inflight sync.WaitGroup
}

func NewLifecycleManager(transport ports.Transport, credentials ports.CredentialStore, handler MessageHandler, opts ...LifecycleOption) *LifecycleManager {
	m := &LifecycleManager{
		transport:   transport,
		credentials: credentials,
		handler:     handler,
		clock:       ports.SystemClock{},
		logger:      zap.NewNop(),
		retryDelay:  DefaultRetryDelay,
		status:      domain.SessionStatus{State: domain.SessionDisconnected},
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Subscribe registers an observer of lifecycle events. Delivery never blocks
// the manager: events that do not fit in the buffer are dropped. The channel
// is closed when Run returns.
func (m *LifecycleManager) Subscribe(buffer int) <-chan domain.LifecycleEvent {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan domain.LifecycleEvent, buffer)
	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

func (m *LifecycleManager) Status() domain.SessionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := m.status
	if status.LastDisconnect != nil {
		reason := *status.LastDisconnect
		status.LastDisconnect = &reason
	}

	return status
}

// Run returns when ctx is cancelled or with domain.ErrLoggedOut.
func (m *LifecycleManager) Run(ctx context.Context) error {
	defer m.closeSubscribers()
	defer m.inflight.Wait()

	credentials, err := m.credentials.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrCredentialsNotFound) {
		return fmt.Errorf("load credentials: %w", err)
	}
	if credentials.Usable() {
		m.current = credentials
	}

	for {
		reason, err := m.connect(ctx)
		if err != nil {
			m.setState(domain.SessionDisconnected)
			return err
		}

		m.closed(reason)
		if !reason.Recoverable() {
			m.setState(domain.SessionDisconnected)
			m.logger.Error("session logged out, clear stored credentials and restart to pair again",
				zap.Int("status", reason.Status))
			return fmt.Errorf("%w: %s", domain.ErrLoggedOut, reason)
		}

		m.mu.Lock()
		m.status.Retries++
		retries := m.status.Retries
		m.mu.Unlock()

		m.logger.Warn("session closed, reconnecting",
			zap.String("reason", reason.String()),
			zap.Duration("delay", m.retryDelay),
			zap.Int("retries", retries))

		select {
		case <-ctx.Done():
			m.setState(domain.SessionDisconnected)
			return ctx.Err()
		case <-m.clock.After(m.retryDelay):
		}
	}
}

// connect runs one session to completion. A nil error means the session
// ended with the returned reason; a non-nil error means ctx was cancelled.
func (m *LifecycleManager) connect(ctx context.Context) (domain.DisconnectReason, error) {
	m.setState(domain.SessionConnecting)

	session, err := m.transport.Dial(ctx, m.reusableCredentials())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.DisconnectReason{}, ctxErr
		}
		return domain.ReasonFromError(err), nil
	}

	events := session.Events()
	for {
		select {
		case <-ctx.Done():
			if closeErr := session.Close(); closeErr != nil {
				m.logger.Debug("close session", zap.Error(closeErr))
			}
			return domain.DisconnectReason{}, ctx.Err()
		case event, ok := <-events:
			if !ok {
				return domain.TransientDisconnect("session ended without a close reason"), nil
			}
			if reason, done := m.handleEvent(ctx, session, event); done {
				if closeErr := session.Close(); closeErr != nil {
					m.logger.Debug("close session", zap.Error(closeErr))
				}
				return reason, nil
			}
		}
	}
}

func (m *LifecycleManager) handleEvent(ctx context.Context, session ports.Session, event ports.SessionEvent) (domain.DisconnectReason, bool) {
	switch event.Kind {
	case ports.SessionEventPairing:
		m.setState(domain.SessionAwaitingPairing)
		m.emit(domain.LifecycleEvent{Kind: domain.LifecyclePairingChallenge, PairingCode: event.PairingCode})
	case ports.SessionEventOpened:
		m.mu.Lock()
		m.status.State = domain.SessionOpen
		m.status.Self = event.Self
		m.status.Retries = 0
		m.status.Since = m.clock.Now()
		m.mu.Unlock()
		m.logger.Info("session open", zap.String("self", event.Self))
		m.emit(domain.LifecycleEvent{Kind: domain.LifecycleOpened, Self: event.Self})
	case ports.SessionEventCredentials:
		m.rotate(ctx, event.Credentials)
	case ports.SessionEventMessage:
		m.dispatch(ctx, session, event.Message)
	case ports.SessionEventError:
		m.logger.Warn("session error", zap.Error(event.Err))
	case ports.SessionEventClosed:
		return event.Reason, true
	default:
		m.logger.Debug("unknown session event", zap.String("kind", string(event.Kind)))
	}

	return domain.DisconnectReason{}, false
}

func (m *LifecycleManager) rotate(ctx context.Context, credentials *domain.Credentials) {
	if !credentials.Usable() {
		return
	}

	rotated := *credentials
	if rotated.UpdatedAt.IsZero() {
		rotated.UpdatedAt = m.clock.Now()
	}

	if err := m.credentials.Save(ctx, rotated); err != nil {
		m.logger.Error("persist rotated credentials", zap.Error(err))
		return
	}

	m.mu.Lock()
	m.current = &rotated
	m.mu.Unlock()
}

func (m *LifecycleManager) dispatch(ctx context.Context, session ports.Session, msg *domain.RawMessage) {
	if msg == nil || m.handler == nil {
		return
	}

	delivered := *msg
	if delivered.OwnJID == "" {
		delivered.OwnJID = m.Status().Self
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		m.handler.HandleMessage(ctx, session, delivered)
	}()
}

func (m *LifecycleManager) reusableCredentials() *domain.Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.current.Usable() {
		return nil
	}

	credentials := *m.current
	return &credentials
}

func (m *LifecycleManager) closed(reason domain.DisconnectReason) {
	m.mu.Lock()
	m.status.State = domain.SessionClosed
	m.status.LastDisconnect = &reason
	m.status.Since = m.clock.Now()
	m.mu.Unlock()

	m.emit(domain.LifecycleEvent{Kind: domain.LifecycleClosed, Reason: reason})
}

func (m *LifecycleManager) setState(state domain.SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status.State == state {
		return
	}
	m.status.State = state
	m.status.Since = m.clock.Now()
}

func (m *LifecycleManager) emit(event domain.LifecycleEvent) {
	if event.At.IsZero() {
		event.At = m.clock.Now()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ch := range m.subscribers {
		select {
		case ch <- event:
		default:
			m.logger.Debug("lifecycle subscriber is full, event dropped",
				zap.String("kind", string(event.Kind)))
		}
	}
}

func (m *LifecycleManager) closeSubscribers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = nil
}
