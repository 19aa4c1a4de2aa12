// Package version carries build metadata set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/agents-at-scale/ark-cli/internal/version.Version=v0.1.0"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line summary of the build.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
