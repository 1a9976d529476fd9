package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tessro/roundup/internal/logging"
)

// Validation errors.
var (
	ErrEmptyPrefix     = errors.New("prefix cannot be empty")
	ErrInvalidPrefix   = errors.New("prefix contains whitespace")
	ErrPrefixTooLong   = errors.New("prefix exceeds maximum length")
	ErrInvalidListMode = errors.New("list_mode must be 'per-id' or 'single'")
	ErrInvalidLogLevel = errors.New("log level must be 'debug', 'info', 'warn', or 'error'")
	ErrInvalidTokenEnv = errors.New("token_env is not a valid environment variable name")
	ErrMissingToken    = errors.New("bot token not found")
	ErrUnknownKey      = errors.New("unknown configuration key")
)

// MaxPrefixLength is the longest accepted command prefix.
const MaxPrefixLength = 8

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every field and returns the first error found.
func (c *Config) Validate() error {
	if err := ValidatePrefix(c.Bot.Prefix); err != nil {
		return err
	}
	if err := ValidateTokenEnv(c.Bot.TokenEnv); err != nil {
		return err
	}
	if err := ValidateListMode(c.Bot.ListMode); err != nil {
		return err
	}
	return ValidateLogLevel(c.Log.Level)
}

// ValidatePrefix validates a command prefix.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return &ValidationError{
			Field:   "bot.prefix",
			Message: "cannot be empty",
			Err:     ErrEmptyPrefix,
		}
	}
	if len(prefix) > MaxPrefixLength {
		return &ValidationError{
			Field:   "bot.prefix",
			Value:   prefix,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", MaxPrefixLength),
			Err:     ErrPrefixTooLong,
		}
	}
	if strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return &ValidationError{
			Field:   "bot.prefix",
			Value:   prefix,
			Message: "must not contain whitespace",
			Err:     ErrInvalidPrefix,
		}
	}
	return nil
}

// ValidateTokenEnv validates an environment variable name.
func ValidateTokenEnv(name string) error {
	valid := name != ""
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			valid = false
		}
	}
	if !valid {
		return &ValidationError{
			Field:   "bot.token_env",
			Value:   name,
			Message: "must be letters, digits, and underscores, not starting with a digit",
			Err:     ErrInvalidTokenEnv,
		}
	}
	return nil
}

// ValidateListMode validates the list rendering mode.
func ValidateListMode(mode string) error {
	switch mode {
	case ListModePerID, ListModeSingle:
		return nil
	}
	return &ValidationError{
		Field:   "bot.list_mode",
		Value:   mode,
		Message: "must be 'per-id' or 'single'",
		Err:     ErrInvalidListMode,
	}
}

// ValidateLogLevel validates a log level name.
func ValidateLogLevel(level string) error {
	if logging.ValidLevel(level) {
		return nil
	}
	return &ValidationError{
		Field:   "log.level",
		Value:   level,
		Message: "must be 'debug', 'info', 'warn', or 'error'",
		Err:     ErrInvalidLogLevel,
	}
}
