package driver

import (
	"fmt"
	"strings"

	"stylekit/internal/config"
	"stylekit/internal/plugin"
	"stylekit/internal/prefix"
	"stylekit/internal/writer"
)

// Options configure a single stylesheet run.
type Options struct {
	Mode       writer.Mode
	AutoRefine bool
	MaxDepth   int
	NFC        bool

	// Matrix enables the prefixer when non-nil.
	Matrix    *prefix.SupportMatrix
	Rearrange bool
	Prune     bool

	SelectorDepth int
	Duplicates    bool

	// Plugins are installed after the built-in ones.
	Plugins []plugin.Plugin
}

// OptionsFromConfig turns a configuration into options. The support matrix
// is built here, so configuration errors are reported before any input is
// read.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	mode, err := cfg.WriterMode()
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Mode:          mode,
		AutoRefine:    cfg.AutoRefine,
		MaxDepth:      cfg.MaxDepth,
		SelectorDepth: cfg.Validators.SelectorDepth,
		Duplicates:    cfg.Validators.Duplicates,
		Rearrange:     cfg.Prefixer.Rearrange,
		Prune:         cfg.Prefixer.Prune,
	}
	if cfg.Prefixer.Enabled {
		m, err := cfg.Matrix(nil)
		if err != nil {
			return Options{}, err
		}
		opts.Matrix = m
	}
	return opts, nil
}

// fingerprint identifies every option that changes output. Extra plugins
// are identified by name only.
func (o Options) fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s;refine=%t;depth=%d;nfc=%t;sel=%d;dup=%t", o.Mode, o.AutoRefine, o.MaxDepth, o.NFC, o.SelectorDepth, o.Duplicates)
	if o.Matrix != nil {
		fmt.Fprintf(&b, ";support=%s;re=%t;prune=%t", o.Matrix, o.Rearrange, o.Prune)
	}
	for _, p := range o.Plugins {
		b.WriteString(";plugin=" + p.Name())
	}
	return b.String()
}
