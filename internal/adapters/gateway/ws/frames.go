package ws

import "github.com/bnema/whatsavings/internal/domain"

type frameType string

// Frames exchanged with the gateway sidecar that holds the actual multi-device
// connection. Every frame is one JSON text message.
const (
	frameHello   frameType = "hello"
	frameSend    frameType = "send"
	frameQR      frameType = "qr"
	frameOpen    frameType = "open"
	frameCreds   frameType = "creds"
	frameMessage frameType = "message"
	frameAck     frameType = "ack"
	frameClose   frameType = "close"
	frameError   frameType = "error"
)

// closeCodeBase maps gateway status codes onto private websocket close codes,
// so status 401 arrives as close code 4401.
const closeCodeBase = 4000

type frame struct {
	Type        frameType          `json:"type"`
	ID          string             `json:"id,omitempty"`
	Client      string             `json:"client,omitempty"`
	To          string             `json:"to,omitempty"`
	Text        string             `json:"text,omitempty"`
	Code        string             `json:"code,omitempty"`
	Self        string             `json:"self,omitempty"`
	Account     string             `json:"account,omitempty"`
	Credentials []byte             `json:"credentials,omitempty"`
	Message     *domain.RawMessage `json:"message,omitempty"`
	Status      int                `json:"status,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	Error       string             `json:"error,omitempty"`
}
