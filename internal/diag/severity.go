package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics; a higher value is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// MarshalText writes the lower-case name used in JSON and config files.
func (s Severity) MarshalText() ([]byte, error) {
	if int(s) >= len(severityNames) {
		return nil, fmt.Errorf("unknown severity %d", s)
	}
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity accepts the names in any case, plus "warn".
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARN" {
		return SevWarning, nil
	}
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil // #nosec G115 -- len(severityNames) is 3
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|warning|error)", name)
}
