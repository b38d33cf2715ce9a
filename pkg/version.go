// Package polcat holds build information for the polcat application.
package polcat

var (
	// Version of polcat, set by the build with ldflags.
	Version = "v0.1.0"
	// Build timestamp, set by the build with ldflags.
	Build = "n/a"
)
