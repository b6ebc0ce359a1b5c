package domain

import (
	"errors"
	"fmt"
	"time"
)

type SessionState string

const (
	SessionDisconnected    SessionState = "disconnected"
	SessionConnecting      SessionState = "connecting"
	SessionAwaitingPairing SessionState = "awaiting_pairing"
	SessionOpen            SessionState = "open"
	SessionClosed          SessionState = "closed"
)

func (s SessionState) Label() string {
	switch s {
	case SessionDisconnected:
		return "Disconnected"
	case SessionConnecting:
		return "Connecting"
	case SessionAwaitingPairing:
		return "Awaiting pairing"
	case SessionOpen:
		return "Open"
	case SessionClosed:
		return "Closed"
	default:
		return string(s)
	}
}

type DisconnectKind string

const (
	DisconnectLoggedOut DisconnectKind = "logged_out"
	DisconnectTransient DisconnectKind = "transient"
)

// StatusLoggedOut is the gateway status sent when the paired device was
// removed from the phone. It is the only status that stops reconnection.
const StatusLoggedOut = 401

type DisconnectReason struct {
	Kind    DisconnectKind
	Status  int
	Message string
}

// ClassifyDisconnect turns a raw gateway status into a tagged reason. Zero
// means the transport ended without reporting a status.
func ClassifyDisconnect(status int, message string) DisconnectReason {
	kind := DisconnectTransient
	if status == StatusLoggedOut {
		kind = DisconnectLoggedOut
	}

	return DisconnectReason{Kind: kind, Status: status, Message: message}
}

func TransientDisconnect(message string) DisconnectReason {
	return DisconnectReason{Kind: DisconnectTransient, Message: message}
}

func (r DisconnectReason) Recoverable() bool {
	return r.Kind != DisconnectLoggedOut
}

func (r DisconnectReason) String() string {
	if r.Status == 0 {
		if r.Message == "" {
			return string(r.Kind)
		}
		return fmt.Sprintf("%s: %s", r.Kind, r.Message)
	}
	if r.Message == "" {
		return fmt.Sprintf("%s (status %d)", r.Kind, r.Status)
	}
	return fmt.Sprintf("%s (status %d): %s", r.Kind, r.Status, r.Message)
}

type DisconnectError struct {
	Reason DisconnectReason
}

func (e *DisconnectError) Error() string {
	return "session disconnected: " + e.Reason.String()
}

// ReasonFromError returns the reason attached by the transport, or a
// transient reason when the error was never classified.
func ReasonFromError(err error) DisconnectReason {
	var disconnectErr *DisconnectError
	if errors.As(err, &disconnectErr) {
		return disconnectErr.Reason
	}

	return TransientDisconnect(err.Error())
}

type SessionStatus struct {
	State          SessionState
	LastDisconnect *DisconnectReason
	Retries        int
	Self           string
	Since          time.Time
}
