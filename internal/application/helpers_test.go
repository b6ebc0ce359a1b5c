package application

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const authorizedNumber = "6281234567890"

func mockAnyContext() interface{} {
	return mock.Anything
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func (f fixedClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

// recordingClock fires every After immediately and remembers the delays.
type recordingClock struct {
	mu     sync.Mutex
	now    time.Time
	delays []time.Duration
}

func (c *recordingClock) Now() time.Time {
	return c.now
}

func (c *recordingClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *recordingClock) Delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

type sentText struct {
	to   string
	text string
}

type fakeSession struct {
	events chan ports.SessionEvent

	mu     sync.Mutex
	closed bool
	sent   []sentText
}

var _ ports.Session = (*fakeSession)(nil)

func newFakeSession(events ...ports.SessionEvent) *fakeSession {
	ch := make(chan ports.SessionEvent, len(events)+8)
	for _, event := range events {
		ch <- event
	}

	return &fakeSession{events: ch}
}

func (s *fakeSession) Events() <-chan ports.SessionEvent {
	return s.events
}

func (s *fakeSession) SendText(ctx context.Context, to string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionNotOpen
	}
	s.sent = append(s.sent, sentText{to: to, text: text})
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *fakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) Sent() []sentText {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentText(nil), s.sent...)
}

func directMessage(id string, text string) domain.RawMessage {
	return domain.RawMessage{
		ID:        id,
		RemoteJID: authorizedNumber + "@s.whatsapp.net",
		Content:   &domain.MessageContent{Conversation: text},
	}
}
