package domain

import (
	"strings"
	"unicode"
)

const groupServer = "g.us"

type Channel string

const (
	ChannelDirect Channel = "direct"
	ChannelGroup  Channel = "group"
)

func ChannelOf(jid string) Channel {
	_, server, found := strings.Cut(jid, "@")
	if found && server == groupServer {
		return ChannelGroup
	}

	return ChannelDirect
}

// NormalizeNumber reduces an address such as "62812:3@s.whatsapp.net" to the
// bare digits of its user part.
func NormalizeNumber(jid string) string {
	user, _, _ := strings.Cut(jid, "@")
	user, _, _ = strings.Cut(user, ":")

	return DigitsOnly(user)
}

func DigitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// MessageContent holds the text-bearing payload variants. Other media kinds
// leave every field empty.
type MessageContent struct {
	Conversation string `json:"conversation,omitempty"`
	ExtendedText string `json:"extendedText,omitempty"`
	ImageCaption string `json:"imageCaption,omitempty"`
}

func (c *MessageContent) Text() string {
	if c == nil {
		return ""
	}

	for _, candidate := range []string{c.Conversation, c.ExtendedText, c.ImageCaption} {
		if strings.TrimFunc(candidate, unicode.IsSpace) != "" {
			return candidate
		}
	}

	return ""
}

type RawMessage struct {
	ID        string          `json:"id"`
	RemoteJID string          `json:"remoteJid"`
	OwnJID    string          `json:"ownJid,omitempty"`
	FromMe    bool            `json:"fromMe"`
	Content   *MessageContent `json:"content,omitempty"`
}

type InboundEvent struct {
	MessageID  string
	Sender     string
	ReplyTo    string
	Channel    Channel
	SelfOrigin bool
	Text       string
}

type Verdict string

const (
	VerdictAccepted     Verdict = "accepted"
	VerdictNoContent    Verdict = "no_content"
	VerdictGroup        Verdict = "group"
	VerdictUnauthorized Verdict = "unauthorized"
)
