// Package paths provides a single source of truth for roundup file paths.
//
// Path resolution precedence:
//  1. ROUNDUP_DIR sets the base directory (derives config and log paths)
//  2. Default behavior (~/.roundup, ~/.config/roundup) when unset
package paths

import (
	"os"
	"path/filepath"
)

// EnvRoundupDir is the base directory override (e.g., /tmp/roundup-dev).
const EnvRoundupDir = "ROUNDUP_DIR"

// BaseDir returns the roundup base directory (~/.roundup by default).
// Honors ROUNDUP_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvRoundupDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roundup"), nil
}

// ConfigDir returns the roundup config directory (~/.config/roundup by default).
// When ROUNDUP_DIR is set, returns ROUNDUP_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvRoundupDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "roundup"), nil
}

// ConfigPath returns the path to the roundup config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the default log file path (~/.roundup/roundup.log).
func LogPath() string {
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "roundup.log")
	}
	return filepath.Join(base, "roundup.log")
}
