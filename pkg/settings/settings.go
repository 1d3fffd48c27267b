// Package settings provides build metadata, per-run configuration, and
// context helpers used by the splitview CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "splitview"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds settings for a single execution of the CLI.
type Run struct {
	MinLogLevel int8
	ConfigPath  string
	// MaxColumns overrides maximum_number_of_columns when non-zero.
	MaxColumns  int
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns the defaults used when the CLI starts.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		ExitOnError: true,
	}
}

// LogLevel maps a debug toggle onto the zap level used by the logger
// package: -1 (debug) when enabled, 0 (info) otherwise.
func LogLevel(debug bool) int8 {
	if debug {
		return -1
	}
	return 0
}
