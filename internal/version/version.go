// Package version provides build and version information.
package version

import "fmt"

// Build information set via ldflags:
//
//	go build -ldflags "-X github.com/tessro/roundup/internal/version.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build information for display and logs.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
