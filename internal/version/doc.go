// Package version carries the build metadata stamped into the catpoint
// binary.
//
// Version, Commit and BuildTime are ldflags injection points with sane
// defaults for plain `go build`. Short and Full render them for the CLI.
package version
