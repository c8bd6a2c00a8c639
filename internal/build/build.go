// Package build holds build-time metadata for mup.
package build

// Version is the application version. It is overridden at link time via
// -ldflags "-X go.mup.dev/mup/internal/build.Version=...".
var Version = "dev"
