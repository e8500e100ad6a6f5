// Package version provides version information and build metadata for datagz.
//
// This package handles version reporting for the datagz binary, supporting both
// compile-time version injection via build flags and runtime version detection
// using Go's build info. It provides a flexible versioning system that works
// in development, CI/CD, and release scenarios.
//
// Version Information Sources:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// The package provides multiple version formats:
//   - GetVersion(): Simple version string
//   - GetFullVersion(): Formatted version with commit and build date
//   - GetInfo(): Complete version information as a struct
//   - Fprint(): Human-readable version output, used by the version subcommand
//
// Build Integration:
// Release builds set version information using:
//   -ldflags "-X github.com/dendrascience/datagz/version.Version=v1.0.0 -X github.com/dendrascience/datagz/version.Commit=abc123 -X github.com/dendrascience/datagz/version.Date=2023-01-01T00:00:00Z"
//
// This ensures consistent version reporting across all datagz subcommands.
package version
