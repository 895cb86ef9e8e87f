// Package version exposes the build version of the gridref binary.
package version

// Version is set at build time via -ldflags "-X github.com/osgb/gridref/pkg/version.Version=...".
var Version = "dev" //nolint:gochecknoglobals // Overridden by the linker at release builds

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
