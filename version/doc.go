// Package version reports the classver version and build metadata.
//
// Release builds set the version at link time:
//
//	-ldflags "-X github.com/dendrascience/classver/version.Version=v1.0.0 -X github.com/dendrascience/classver/version.Commit=abc123 -X github.com/dendrascience/classver/version.Date=2026-01-01T00:00:00Z"
//
// Unset fields fall back to the module version and VCS settings the Go
// toolchain records, and the version to "development" when nothing is known.
package version
