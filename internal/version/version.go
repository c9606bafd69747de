package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the stylekit CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor, Patch and Suffix make up the semantic version.
	Major  = "0"
	Minor  = "1"
	Patch  = "0"
	Suffix = "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain is the version without color, used for cache keys and JSON output.
func Plain() string {
	return Major + "." + Minor + "." + Patch + Suffix
}

// Version is the colored version for terminal output. Color follows
// color.NoColor.
func Version() string {
	return versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch) + Suffix
}

// Long renders the version with whatever build metadata is set.
func Long() string {
	var sb strings.Builder
	sb.WriteString("stylekit ")
	sb.WriteString(Version())
	if GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(GitCommit)
		if BuildDate != "" {
			sb.WriteString(", ")
			sb.WriteString(BuildDate)
		}
		sb.WriteString(")")
	} else if BuildDate != "" {
		sb.WriteString(" (" + BuildDate + ")")
	}
	if GitMessage != "" {
		sb.WriteString("\n  ")
		sb.WriteString(GitMessage)
	}
	return sb.String()
}
