package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case DriverPostgres:
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_NAME", cfg.DBName)
		require("DB_USER", cfg.DBUser)
		if cfg.DBPassword == "" {
			if cfg.Env == Production {
				errs = append(errs, ValidationError{Field: "db_password", Message: "secret is required"})
			} else {
				errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "is required"})
			}
		}
	case DriverSQLite:
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
		require("SQLITE_PATH", cfg.SQLitePath)
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.RateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
