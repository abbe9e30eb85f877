package version

import "fmt"

// Set via -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String formats the build metadata for `codepdf --version`.
func String() string {
	return fmt.Sprintf("codepdf %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
