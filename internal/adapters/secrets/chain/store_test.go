package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/whatsavings/internal/domain"
	portmocks "github.com/bnema/whatsavings/internal/ports/mocks"
)

const credentialsKey = "whatsavings/default/credentials"

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	putErr  error
	readErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Put(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", domain.ErrSecretNotFound
	}
	return value, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryStore) setPutErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

func TestStoreRotationDuringPrimaryOutageSurvivesRecovery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := newMemoryStore()
	fallback := newMemoryStore()
	store := NewStore(primary, fallback)

	require.NoError(t, store.Put(ctx, credentialsKey, "creds-v1"))

	primary.setPutErr(errors.New("gpg agent unavailable"))
	require.NoError(t, store.Put(ctx, credentialsKey, "creds-v2"))

	primary.setPutErr(nil)

	value, err := store.Get(ctx, credentialsKey)
	require.NoError(t, err)
	assert.Equal(t, "creds-v2", value)

	require.NoError(t, store.Put(ctx, credentialsKey, "creds-v3"))
	_, err = fallback.Get(ctx, credentialsKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)

	value, err = store.Get(ctx, credentialsKey)
	require.NoError(t, err)
	assert.Equal(t, "creds-v3", value)
}

func TestStoreGetUsesPrimaryWhenFallbackIsEmpty(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	fallback.EXPECT().Get(mock.Anything, credentialsKey).Return("", fmt.Errorf("file: %w", domain.ErrSecretNotFound)).Once()
	primary.EXPECT().Get(mock.Anything, credentialsKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), credentialsKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetPrefersFallbackCopy(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	fallback.EXPECT().Get(mock.Anything, credentialsKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), credentialsKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetNotFoundInBoth(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	fallback.EXPECT().Get(mock.Anything, credentialsKey).Return("", domain.ErrSecretNotFound).Once()
	primary.EXPECT().Get(mock.Anything, credentialsKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), credentialsKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	fallback.EXPECT().Get(mock.Anything, credentialsKey).Return("", domain.ErrSecretNotFound).Once()
	primary.EXPECT().Get(mock.Anything, credentialsKey).Return("", errors.New("pass failed")).Once()

	_, err := store.Get(context.Background(), credentialsKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend get failed: pass failed")
	assert.ErrorContains(t, err, "fallback backend")
}

func TestStoreGetFallsThroughUnreadableFallback(t *testing.T) {
	t.Parallel()

	primary := newMemoryStore()
	fallback := newMemoryStore()
	fallback.readErr = errors.New("permission denied")
	store := NewStore(primary, fallback)

	require.NoError(t, primary.Put(context.Background(), credentialsKey, "from-pass"))

	value, err := store.Get(context.Background(), credentialsKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetStopsOnCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	fallback.EXPECT().Get(mock.Anything, credentialsKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), credentialsKey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorePut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(primary, fallback *portmocks.MockSecretStore)
		wantErr string
	}{
		{
			name: "primary write clears fallback copy",
			setup: func(primary, fallback *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(nil).Once()
				fallback.EXPECT().Delete(mock.Anything, credentialsKey).Return(nil).Once()
			},
		},
		{
			name: "undeletable fallback copy is overwritten",
			setup: func(primary, fallback *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(nil).Once()
				fallback.EXPECT().Delete(mock.Anything, credentialsKey).Return(errors.New("busy")).Once()
				fallback.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(nil).Once()
			},
		},
		{
			name: "stale fallback copy that cannot be fixed is reported",
			setup: func(primary, fallback *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(nil).Once()
				fallback.EXPECT().Delete(mock.Anything, credentialsKey).Return(errors.New("busy")).Once()
				fallback.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(errors.New("read-only file system")).Once()
			},
			wantErr: "fallback backend put failed: read-only file system",
		},
		{
			name: "primary failure writes fallback",
			setup: func(primary, fallback *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(errors.New("pass unavailable")).Once()
				fallback.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(nil).Once()
			},
		},
		{
			name: "both backends failing is reported",
			setup: func(primary, fallback *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(errors.New("pass unavailable")).Once()
				fallback.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(errors.New("disk full")).Once()
			},
			wantErr: "primary backend put failed: pass unavailable; fallback backend put failed: disk full",
		},
		{
			name: "cancellation does not touch fallback",
			setup: func(primary, _ *portmocks.MockSecretStore) {
				primary.EXPECT().Put(mock.Anything, credentialsKey, "doc").Return(context.Canceled).Once()
			},
			wantErr: context.Canceled.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			primary := portmocks.NewMockSecretStore(t)
			fallback := portmocks.NewMockSecretStore(t)
			tt.setup(primary, fallback)

			err := NewStore(primary, fallback).Put(context.Background(), credentialsKey, "doc")
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, credentialsKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, credentialsKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), credentialsKey))
}

func TestStoreDeleteReportsFallbackFailure(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, credentialsKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, credentialsKey).Return(errors.New("read-only file system")).Once()

	err := store.Delete(context.Background(), credentialsKey)
	assert.ErrorContains(t, err, "fallback backend delete failed: read-only file system")
}

func TestNewStoreCheckedRejectsNil(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}
