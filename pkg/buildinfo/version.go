// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/gduarte0/program2mass/pkg/buildinfo.Version=v0.6.0 \
//	    -X github.com/gduarte0/program2mass/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/gduarte0/program2mass/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v0.6.0").
	// Set via ldflags: -X github.com/gduarte0/program2mass/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/gduarte0/program2mass/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/gduarte0/program2mass/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Banner returns the one-line header printed by the CLI and the server.
func Banner() string {
	return fmt.Sprintf("program2mass %s (%s)", Version, Commit)
}
