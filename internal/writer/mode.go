package writer

import (
	"strings"

	"stylekit/internal/diag"
)

type Mode uint8

const (
	Verbose Mode = iota
	Inline
	Compressed
)

func (m Mode) String() string {
	switch m {
	case Verbose:
		return "verbose"
	case Inline:
		return "inline"
	case Compressed:
		return "compressed"
	}
	return "unknown"
}

// ParseMode accepts a mode name or its first letter.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "v", "":
		return Verbose, nil
	case "inline", "i":
		return Inline, nil
	case "compressed", "c", "min":
		return Compressed, nil
	}
	return 0, diag.NewConfigError(diag.CfgBadMode, s, "unknown output mode %q", s)
}
