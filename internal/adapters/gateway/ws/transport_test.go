package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

type gatewayScript func(t *testing.T, conn *websocket.Conn, hello frame)

func startGateway(t *testing.T, script gatewayScript) *Transport {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		var hello frame
		if !assert.NoError(t, conn.ReadJSON(&hello)) {
			return
		}
		assert.Equal(t, frameHello, hello.Type)
		script(t, conn, hello)
	}))
	t.Cleanup(server.Close)

	transport, err := NewTransport(Config{
		URL:         "ws" + strings.TrimPrefix(server.URL, "http"),
		Token:       "secret-token",
		SendTimeout: 2 * time.Second,
	}, nil)
	require.NoError(t, err)

	return transport
}

func nextEvent(t *testing.T, session ports.Session) ports.SessionEvent {
	t.Helper()

	select {
	case event, ok := <-session.Events():
		require.True(t, ok, "events channel closed")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for session event")
		return ports.SessionEvent{}
	}
}

func TestSessionDeliversGatewayFramesInOrder(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		assert.Empty(t, hello.Credentials)
		for _, f := range []frame{
			{Type: frameQR, Code: "2@pairing-ref"},
			{Type: frameCreds, Account: "6281234567890", Credentials: []byte(`{"me":"x"}`)},
			{Type: frameOpen, Self: "6281234567890:7@s.whatsapp.net"},
			{Type: frameMessage, Message: &domain.RawMessage{
				ID:        "3EB0",
				RemoteJID: "6281234567890@s.whatsapp.net",
				Content:   &domain.MessageContent{Conversation: "add 10k"},
			}},
			{Type: frameClose, Status: domain.StatusLoggedOut, Reason: "device removed"},
		} {
			assert.NoError(t, conn.WriteJSON(f))
		}
		_, _, _ = conn.ReadMessage()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	pairing := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventPairing, pairing.Kind)
	assert.Equal(t, "2@pairing-ref", pairing.PairingCode)

	creds := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventCredentials, creds.Kind)
	require.NotNil(t, creds.Credentials)
	assert.Equal(t, []byte(`{"me":"x"}`), creds.Credentials.Data)
	assert.Equal(t, "6281234567890", creds.Credentials.Account)

	opened := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventOpened, opened.Kind)
	assert.Equal(t, "6281234567890:7@s.whatsapp.net", opened.Self)

	message := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventMessage, message.Kind)
	require.NotNil(t, message.Message)
	assert.Equal(t, "add 10k", message.Message.Content.Text())

	closed := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventClosed, closed.Kind)
	assert.Equal(t, domain.DisconnectLoggedOut, closed.Reason.Kind)
	assert.Equal(t, "device removed", closed.Reason.Message)
}

func TestDialSendsStoredCredentials(t *testing.T) {
	t.Parallel()

	got := make(chan frame, 1)
	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		got <- hello
		_ = conn.WriteJSON(frame{Type: frameClose, Status: 515})
	})

	session, err := transport.Dial(context.Background(), &domain.Credentials{Account: "628", Data: []byte("opaque")})
	require.NoError(t, err)
	defer session.Close()

	hello := <-got
	assert.Equal(t, "628", hello.Account)
	assert.Equal(t, []byte("opaque"), hello.Credentials)
	assert.Equal(t, clientName, hello.Client)

	closed := nextEvent(t, session)
	assert.Equal(t, domain.DisconnectTransient, closed.Reason.Kind)
	assert.Equal(t, 515, closed.Reason.Status)
}

func TestSendTextWaitsForAcknowledgment(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		assert.NoError(t, conn.WriteJSON(frame{Type: frameOpen, Self: "628@s.whatsapp.net"}))

		for i := 0; i < 2; i++ {
			var send frame
			if !assert.NoError(t, conn.ReadJSON(&send)) {
				return
			}
			assert.Equal(t, frameSend, send.Type)
			assert.Equal(t, "628@s.whatsapp.net", send.To)

			ack := frame{Type: frameAck, ID: send.ID}
			if send.Text == "reject me" {
				ack.Error = "not on whatsapp"
			}
			assert.NoError(t, conn.WriteJSON(ack))
		}
		_, _, _ = conn.ReadMessage()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	require.Equal(t, ports.SessionEventOpened, nextEvent(t, session).Kind)

	require.NoError(t, session.SendText(context.Background(), "628@s.whatsapp.net", "✅ Tercatat: Rp 10.000 (WIB)"))

	err = session.SendText(context.Background(), "628@s.whatsapp.net", "reject me")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not on whatsapp")
}

func TestSendTextBeforeOpenFails(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		_, _, _ = conn.ReadMessage()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	err = session.SendText(context.Background(), "628@s.whatsapp.net", "hi")
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
}

func TestSendTextAfterCloseFails(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		assert.NoError(t, conn.WriteJSON(frame{Type: frameOpen}))
		_, _, _ = conn.ReadMessage()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, ports.SessionEventOpened, nextEvent(t, session).Kind)
	require.NoError(t, session.Close())
	require.NoError(t, session.Close())

	err = session.SendText(context.Background(), "628@s.whatsapp.net", "hi")
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
}

func TestPrivateCloseCodeCarriesStatus(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(closeCodeBase+domain.StatusLoggedOut, "logged out"))
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	closed := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventClosed, closed.Kind)
	assert.Equal(t, domain.DisconnectLoggedOut, closed.Reason.Kind)
	assert.Equal(t, domain.StatusLoggedOut, closed.Reason.Status)
}

func TestDroppedConnectionIsTransient(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		_ = conn.UnderlyingConn().Close()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	closed := nextEvent(t, session)
	assert.Equal(t, ports.SessionEventClosed, closed.Kind)
	assert.True(t, closed.Reason.Recoverable())

	_, ok := <-session.Events()
	assert.False(t, ok)
}

func TestMalformedAndUnknownFramesBecomeErrors(t *testing.T) {
	t.Parallel()

	transport := startGateway(t, func(t *testing.T, conn *websocket.Conn, hello frame) {
		assert.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		raw, _ := json.Marshal(map[string]string{"type": "presence"})
		assert.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
		assert.NoError(t, conn.WriteJSON(frame{Type: frameError, Error: "bad mac"}))
		_, _, _ = conn.ReadMessage()
	})

	session, err := transport.Dial(context.Background(), nil)
	require.NoError(t, err)
	defer session.Close()

	for _, want := range []string{"decode gateway frame", `unknown gateway frame "presence"`, "gateway: bad mac"} {
		event := nextEvent(t, session)
		assert.Equal(t, ports.SessionEventError, event.Kind)
		assert.ErrorContains(t, event.Err, want)
	}
}

func TestDialFailureIsTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	transport, err := NewTransport(Config{URL: "ws" + strings.TrimPrefix(server.URL, "http")}, nil)
	require.NoError(t, err)

	_, err = transport.Dial(context.Background(), nil)
	require.Error(t, err)
	reason := domain.ReasonFromError(err)
	assert.True(t, reason.Recoverable())
	assert.Contains(t, reason.Message, "503")
}

func TestNewTransportRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewTransport(Config{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
