package ports

import (
	"context"

	"github.com/bnema/whatsavings/internal/domain"
)

type SessionEventKind string

const (
	SessionEventPairing     SessionEventKind = "pairing"
	SessionEventOpened      SessionEventKind = "opened"
	SessionEventCredentials SessionEventKind = "credentials"
	SessionEventMessage     SessionEventKind = "message"
	SessionEventError       SessionEventKind = "error"
	SessionEventClosed      SessionEventKind = "closed"
)

// SessionEvent is one notification from a live session. Only the fields
// matching Kind are populated. Closed events always carry a classified Reason.
type SessionEvent struct {
	Kind        SessionEventKind
	PairingCode string
	Self        string
	Credentials *domain.Credentials
	Message     *domain.RawMessage
	Reason      domain.DisconnectReason
	Err         error
}

type MessageSender interface {
	SendText(ctx context.Context, to string, text string) error
}

// Session is a single connection to the messaging network. Events is closed
// once the session has ended, after a closed event when one was observed.
type Session interface {
	MessageSender
	Events() <-chan SessionEvent
	Close() error
}

// Transport dials a new session. Nil credentials request a pairing challenge.
// Dial errors may wrap a *domain.DisconnectError to classify the failure.
type Transport interface {
	Dial(ctx context.Context, credentials *domain.Credentials) (Session, error)
}
