package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of --ui. It implements pflag.Value so a bad value
// is rejected while flags are parsed.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModeNames = [...]string{uiAuto: "auto", uiOn: "on", uiOff: "off"}

func (m uiMode) String() string { return uiModeNames[m] }
func (m uiMode) Type() string   { return "auto|on|off" }

func (m *uiMode) Set(value string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		v = "auto"
	}
	for i, name := range uiModeNames {
		if name == v {
			*m = uiMode(i) // #nosec G115 -- index of a three element array
			return nil
		}
	}
	return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// interactive reports whether the progress view should be drawn on f.
func (m uiMode) interactive(f *os.File) bool {
	if m == uiAuto {
		return isTerminal(f)
	}
	return m == uiOn
}
