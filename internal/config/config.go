// Package config provides configuration loading and validation for roundup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tessro/roundup/internal/paths"
)

// Defaults.
const (
	DefaultPrefix   = "!"
	DefaultTokenEnv = "DISCORD_TOKEN"
	DefaultListMode = ListModePerID
	DefaultLogLevel = "info"
)

// List modes control how the list command renders.
const (
	// ListModePerID sends one card per response ID.
	ListModePerID = "per-id"
	// ListModeSingle aggregates every response ID into one card.
	ListModeSingle = "single"
)

// Config is the roundup configuration.
type Config struct {
	Bot     BotConfig     `toml:"bot"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// BotConfig controls command handling.
type BotConfig struct {
	// Prefix precedes every command name (e.g., "!" for "!submit").
	Prefix string `toml:"prefix"`
	// TokenEnv names the environment variable holding the bot token.
	TokenEnv string `toml:"token_env"`
	// ListMode is "per-id" or "single".
	ListMode string `toml:"list_mode"`
	// Messages is an optional path to a YAML file overriding reply strings.
	Messages string `toml:"messages,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
	// Path is the log file; empty means the default under the base dir.
	Path string `toml:"path,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics (e.g., ":9090").
	// Empty disables the endpoint.
	Addr string `toml:"addr,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			Prefix:   DefaultPrefix,
			TokenEnv: DefaultTokenEnv,
			ListMode: DefaultListMode,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the configuration at path over the defaults and
// validates it. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ValidationError{
			Field:   "config",
			Value:   strings.Join(keys, ", "),
			Message: "unknown keys",
			Err:     ErrUnknownKey,
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills fields an explicit empty value left blank.
func (c *Config) applyDefaults() {
	if c.Bot.TokenEnv == "" {
		c.Bot.TokenEnv = DefaultTokenEnv
	}
	if c.Bot.ListMode == "" {
		c.Bot.ListMode = DefaultListMode
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Token returns the bot token from the environment.
// Returns ErrMissingToken if the variable is unset or empty.
func (c *Config) Token() (string, error) {
	name := c.Bot.TokenEnv
	if name == "" {
		name = DefaultTokenEnv
	}
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", &ValidationError{
			Field:   name,
			Message: "environment variable is not set",
			Err:     ErrMissingToken,
		}
	}
	return token, nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
