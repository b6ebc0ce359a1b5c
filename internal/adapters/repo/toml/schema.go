package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type credentialsSchema struct {
	Version   int    `toml:"version"`
	Session   string `toml:"session"`
	Account   string `toml:"account,omitempty"`
	Data      string `toml:"data"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}

func (s *credentialsSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s credentialsSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported credentials schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
