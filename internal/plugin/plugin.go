package plugin

import (
	"fmt"

	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
)

// Plugin hooks into processing by registering handlers and strategies.
type Plugin interface {
	Name() string
	Register(reg *broadcast.Registry, r *parser.Refiner) error
}

// DependentPlugin needs other plugins registered before it.
type DependentPlugin interface {
	Plugin
	Dependencies() []Plugin
}

// Resolve expands dependencies and drops duplicates by name. A dependency
// is placed before its first dependent unless the caller listed a plugin
// with the same name, in which case the caller's instance wins.
func Resolve(plugins ...Plugin) []Plugin {
	explicit := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		explicit[p.Name()] = true
	}
	seen := make(map[string]bool, len(plugins))
	var out []Plugin
	var visit func(p Plugin, dep bool)
	visit = func(p Plugin, dep bool) {
		name := p.Name()
		if seen[name] || (dep && explicit[name]) {
			return
		}
		seen[name] = true
		if d, ok := p.(DependentPlugin); ok {
			for _, dp := range d.Dependencies() {
				visit(dp, true)
			}
		}
		out = append(out, p)
	}
	for _, p := range plugins {
		visit(p, false)
	}
	return out
}

// Install resolves plugins and registers them in order.
func Install(reg *broadcast.Registry, r *parser.Refiner, plugins ...Plugin) ([]Plugin, error) {
	resolved := Resolve(plugins...)
	for _, p := range resolved {
		if err := p.Register(reg.For(p.Name()), r); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return resolved, nil
}
