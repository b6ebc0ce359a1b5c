package ports

import (
	"context"

	"github.com/bnema/whatsavings/internal/domain"
)

// CredentialStore returns domain.ErrCredentialsNotFound from Load when no
// session was ever paired. Save must be durable before it returns.
type CredentialStore interface {
	Load(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, credentials domain.Credentials) error
	Clear(ctx context.Context) error
}
