package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a loaded Config for the current environment. Production
// refuses to run on the development session secret, and a partially
// configured database is rejected early rather than failing at connect time.
func Validate(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if cfg.SessionSecret == "" {
		return ValidationError{Field: "SESSION_SECRET", Message: "must not be empty"}
	}
	if cfg.SessionTTL <= 0 {
		return ValidationError{Field: "SESSION_TTL", Message: "must be positive"}
	}
	if cfg.SessionPruneInterval <= 0 {
		return ValidationError{Field: "SESSION_PRUNE_INTERVAL", Message: "must be positive"}
	}

	if cfg.Env == Production && cfg.SessionSecret == "lifechip-secret" {
		return ValidationError{Field: "SESSION_SECRET", Message: "default secret not allowed in production"}
	}

	if cfg.DatabaseConfigured() {
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "required when DB_HOST is set"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DB_NAME", Message: "required when DB_HOST is set"}
		}
	}

	return nil
}
