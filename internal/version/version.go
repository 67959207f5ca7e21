package version

import "fmt"

var (
	// Version is the semantic version of this build, overridable via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA recorded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC timestamp recorded at build time.
	BuildTime = "unknown"
)

// Short returns just the semantic version.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return fmt.Sprintf("catpoint %s (commit %s, built %s)", Version, Commit, BuildTime)
}
