// Package build provides build-time information for the CLI application.
// Version is read from the VERSION file or set via ldflags during build.
package build

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Overridable via ldflags:
// -X github.com/opendp/cla-tool/internal/build.version=x.y.z
// -X github.com/opendp/cla-tool/internal/build.commit=<sha>
// -X github.com/opendp/cla-tool/internal/build.date=<rfc3339>
var (
	version string
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	return strings.TrimSpace(embeddedVersion)
}

// Commit returns the git commit the binary was built from.
func Commit() string { return commit }

// Date returns the build date.
func Date() string { return date }
