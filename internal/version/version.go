// Package version holds the application version string, overridable at build
// time with -ldflags "-X .../internal/version.Version=x.y.z".
package version

// Version is the application version reported by the system endpoints.
var Version = "1.0.0"
