package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"bang", "!", nil},
		{"multi char", "rb.", nil},
		{"max length", strings.Repeat("x", MaxPrefixLength), nil},
		{"empty", "", ErrEmptyPrefix},
		{"contains space", "r b", ErrInvalidPrefix},
		{"trailing newline", "!\n", ErrInvalidPrefix},
		{"too long", strings.Repeat("x", MaxPrefixLength+1), ErrPrefixTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePrefix(%q) = %v, want nil", tt.input, err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePrefix(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTokenEnv(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"DISCORD_TOKEN", true},
		{"_TOKEN", true},
		{"bot_token_2", true},
		{"", false},
		{"2TOKEN", false},
		{"BOT-TOKEN", false},
		{"BOT TOKEN", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateTokenEnv(tt.input)
			if tt.valid && err != nil {
				t.Errorf("ValidateTokenEnv(%q) = %v, want nil", tt.input, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidTokenEnv) {
				t.Errorf("ValidateTokenEnv(%q) = %v, want ErrInvalidTokenEnv", tt.input, err)
			}
		})
	}
}

func TestValidateListMode(t *testing.T) {
	for _, mode := range []string{ListModePerID, ListModeSingle} {
		if err := ValidateListMode(mode); err != nil {
			t.Errorf("ValidateListMode(%q) = %v, want nil", mode, err)
		}
	}
	for _, mode := range []string{"", "all", "PER-ID"} {
		if err := ValidateListMode(mode); !errors.Is(err, ErrInvalidListMode) {
			t.Errorf("ValidateListMode(%q) = %v, want ErrInvalidListMode", mode, err)
		}
	}
}

func TestValidateLogLevel(t *testing.T) {
	if err := ValidateLogLevel("debug"); err != nil {
		t.Errorf("ValidateLogLevel(debug) = %v, want nil", err)
	}
	if err := ValidateLogLevel("loud"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("ValidateLogLevel(loud) = %v, want ErrInvalidLogLevel", err)
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "with value",
			err:  &ValidationError{Field: "bot.prefix", Value: "a b", Message: "must not contain whitespace"},
			want: `bot.prefix: must not contain whitespace (got "a b")`,
		},
		{
			name: "without value",
			err:  &ValidationError{Field: "bot.prefix", Message: "cannot be empty"},
			want: "bot.prefix: cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := &ValidationError{Field: "bot.prefix", Err: ErrEmptyPrefix}

	if !errors.Is(err, ErrEmptyPrefix) {
		t.Error("errors.Is(err, ErrEmptyPrefix) = false, want true")
	}
}
