package domain

import "errors"

var (
	ErrLoggedOut           = errors.New("session logged out")
	ErrSessionNotOpen      = errors.New("session is not open")
	ErrPersistenceFailed   = errors.New("persistence failed")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)
