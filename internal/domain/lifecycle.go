package domain

import "time"

type LifecycleEventKind string

const (
	LifecyclePairingChallenge LifecycleEventKind = "pairing_challenge"
	LifecycleOpened           LifecycleEventKind = "opened"
	LifecycleClosed           LifecycleEventKind = "closed"
)

// LifecycleEvent is what observers of the connection see. PairingCode is set
// for pairing challenges, Self for opened sessions and Reason for closures.
type LifecycleEvent struct {
	Kind        LifecycleEventKind
	PairingCode string
	Self        string
	Reason      DisconnectReason
	At          time.Time
}

func (e LifecycleEvent) Recoverable() bool {
	return e.Kind != LifecycleClosed || e.Reason.Recoverable()
}
