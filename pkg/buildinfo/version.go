// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/graphdeck/graphdeck/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/graphdeck/graphdeck/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/graphdeck/graphdeck/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
