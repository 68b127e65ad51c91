// Package version exposes the build version of the vitrify binary.
package version

// Version is the semantic version of this build. Overridden at release time
// via -ldflags "-X github.com/SimosManiatis/vitrify/pkg/version.Version=...".
var Version = "0.1.0-dev" //nolint:gochecknoglobals // set by the linker

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
