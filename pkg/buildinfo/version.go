// Package buildinfo carries the renderbox build identity shown by
// `renderbox --version` and the /healthz endpoint.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/mfeldt/renderbox/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/mfeldt/renderbox/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/mfeldt/renderbox/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3"). A plain "dev"
	// means a local build without ldflags.
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
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
