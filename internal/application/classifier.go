package application

import (
	"strings"

	"github.com/bnema/whatsavings/internal/domain"
)

// Classifier accepts only direct messages from the authorized number.
type Classifier struct {
	authorized string
}

func NewClassifier(authorizedNumber string) *Classifier {
	return &Classifier{authorized: domain.DigitsOnly(authorizedNumber)}
}

func (c *Classifier) AuthorizedNumber() string {
	return c.authorized
}

func (c *Classifier) Classify(msg domain.RawMessage) (domain.InboundEvent, domain.Verdict) {
	if msg.Content == nil {
		return domain.InboundEvent{}, domain.VerdictNoContent
	}

	channel := domain.ChannelOf(msg.RemoteJID)
	if channel == domain.ChannelGroup {
		return domain.InboundEvent{Channel: channel}, domain.VerdictGroup
	}

	senderJID := msg.RemoteJID
	if msg.FromMe {
		senderJID = msg.OwnJID
	}

	event := domain.InboundEvent{
		MessageID:  msg.ID,
		Sender:     domain.NormalizeNumber(senderJID),
		ReplyTo:    replyAddress(senderJID),
		Channel:    channel,
		SelfOrigin: msg.FromMe,
	}
	if c.authorized == "" || event.Sender != c.authorized {
		return event, domain.VerdictUnauthorized
	}

	event.Text = msg.Content.Text()
	return event, domain.VerdictAccepted
}

// replyAddress drops the device part of an address so replies go to the
// account rather than one linked device.
func replyAddress(jid string) string {
	user, server, found := strings.Cut(jid, "@")
	if !found {
		return jid
	}

	user, _, _ = strings.Cut(user, ":")
	return user + "@" + server
}
