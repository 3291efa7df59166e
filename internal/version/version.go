// Package version reports which armada build is running.
package version

import "fmt"

// Release builds stamp these with -ldflags "-X github.com/example/armada/internal/version.Commit=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const shortCommitLen = 7

// String formats the build stamp shown by armada --version.
func String() string {
	commit := Commit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	return fmt.Sprintf("armada %s (commit: %s, built: %s)", Version, commit, BuildTime)
}
