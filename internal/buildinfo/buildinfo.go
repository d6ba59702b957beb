// Package buildinfo carries version stamps injected with -ldflags, e.g.
//
//	go build -ldflags "-X travelglobe/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for titles and log fields.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 12 {
			return Commit[:12]
		}
		return Commit
	}
	return "dev"
}

// String is the full identifier printed by -version.
func String() string {
	return fmt.Sprintf("travelglobe %s (commit %s, built %s)", Version, Commit, Date)
}
