package toml

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const (
	keyPrefix      = "whatsavings"
	credentialsKey = "credentials"
	DefaultSession = "default"
)

// CredentialRepository persists the session credentials as a small versioned
// TOML document inside a secret store. The opaque gateway payload is kept
// base64 encoded so any backend can hold it as a single string.
type CredentialRepository struct {
	store   ports.SecretStore
	session string
	mu      sync.Mutex
}

var _ ports.CredentialStore = (*CredentialRepository)(nil)

func NewCredentialRepository(store ports.SecretStore, session string) *CredentialRepository {
	session = strings.TrimSpace(session)
	if session == "" {
		session = DefaultSession
	}

	return &CredentialRepository{store: store, session: session}
}

func (r *CredentialRepository) SecretKey() string {
	return keyPrefix + "/" + r.session + "/" + credentialsKey
}

func (r *CredentialRepository) Load(ctx context.Context) (*domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.store.Get(ctx, r.SecretKey())
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, domain.ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var doc credentialsSchema
	if err := toml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if err := doc.validateVersion(); err != nil {
		return nil, err
	}
	doc.applyDefaults()

	data, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("decode credentials payload: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrCredentialsNotFound
	}

	return &domain.Credentials{
		Account:   doc.Account,
		Data:      data,
		UpdatedAt: parseTime(doc.UpdatedAt),
	}, nil
}

func (r *CredentialRepository) Save(ctx context.Context, credentials domain.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !credentials.Usable() {
		return errors.New("refusing to save empty credentials")
	}

	doc := credentialsSchema{
		Session:   r.session,
		Account:   credentials.Account,
		Data:      base64.StdEncoding.EncodeToString(credentials.Data),
		UpdatedAt: formatTime(credentials.UpdatedAt),
	}
	doc.applyDefaults()

	encoded, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Put(ctx, r.SecretKey(), string(encoded)); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return nil
}

func (r *CredentialRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, r.SecretKey()); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	return nil
}
