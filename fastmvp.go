// Package fastmvp holds shared metadata for the FastMVP scaffold generator.
package fastmvp

// Version is the current FastMVP release version.
var Version = "0.2.0"
