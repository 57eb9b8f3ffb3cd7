package version

import "fmt"

var (
	// Version is the packager's semantic version. Release builds override it via ldflags.
	Version = "1.0.0"
	// Commit is the short git SHA recorded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC timestamp recorded at build time.
	BuildTime = "unknown"
)

// Short returns just the semantic version string.
func Short() string {
	return Version
}

// Full returns the version together with the commit hash and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
