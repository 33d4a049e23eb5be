// Package version holds build metadata injected at link time.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the UTC timestamp of the build.
	BuildDate = ""
)
