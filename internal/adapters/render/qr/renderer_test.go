package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnema/whatsavings/internal/domain"
)

func TestRenderPairingWritesPromptAndCode(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	renderer := NewRenderer(&out, nil)

	require.NoError(t, renderer.RenderPairing("2@3GxZ1n,abcdef,ghijkl"))

	rendered := out.String()
	assert.Contains(t, rendered, scanPrompt)
	assert.Greater(t, bytes.Count(out.Bytes(), []byte("\n")), 10)
}

func TestFollowRendersPairingAndLogsLifecycle(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	renderer := NewRenderer(&out, zap.New(core))

	events := make(chan domain.LifecycleEvent, 4)
	events <- domain.LifecycleEvent{Kind: domain.LifecyclePairingChallenge, PairingCode: "2@code"}
	events <- domain.LifecycleEvent{Kind: domain.LifecycleOpened, Self: "628@s.whatsapp.net"}
	events <- domain.LifecycleEvent{Kind: domain.LifecycleClosed, Reason: domain.TransientDisconnect("eof")}
	events <- domain.LifecycleEvent{Kind: domain.LifecycleClosed, Reason: domain.ClassifyDisconnect(domain.StatusLoggedOut, "")}
	close(events)

	renderer.Follow(events)

	assert.Contains(t, out.String(), scanPrompt)
	assert.Equal(t, 1, logs.FilterMessage("whatsapp connected").Len())
	assert.Equal(t, 1, logs.FilterMessage("whatsapp connection closed").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
