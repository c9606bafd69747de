package plugin

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
	"stylekit/internal/prefix"
)

// Prefixer adds vendor-prefixed copies of declarations for the browsers in
// its support matrix. Copies are inserted right before the unprefixed
// declaration, in canonical prefix order. A prefixed form already written
// by the author is left alone.
type Prefixer struct {
	matrix *prefix.SupportMatrix

	// Rearrange and Prune are recorded for configuration round trips.
	// Neither changes output yet.
	Rearrange bool
	Prune     bool

	added int
}

// NewPrefixer uses m, which must already be configured.
func NewPrefixer(m *prefix.SupportMatrix) *Prefixer {
	return &Prefixer{matrix: m}
}

// DefaultPrefixer uses prefix.DefaultSupport over the embedded data.
func DefaultPrefixer() *Prefixer {
	return NewPrefixer(prefix.DefaultSupport(prefix.Default()))
}

func (*Prefixer) Name() string { return "prefixer" }

func (p *Prefixer) Dependencies() []Plugin {
	return []Plugin{NestedAtRules{}, &AutoRefine{AtRules: true}}
}

// Matrix is the support matrix in use.
func (p *Prefixer) Matrix() *prefix.SupportMatrix { return p.matrix }

// Added is the number of declarations inserted so far.
func (p *Prefixer) Added() int { return p.added }

func (p *Prefixer) Register(reg *broadcast.Registry, _ *parser.Refiner) error {
	if err := p.matrix.Err(); err != nil {
		return err
	}
	broadcast.Handle(reg, broadcast.PhaseRework, ast.KindDeclaration, p.declaration)
	return nil
}

func (p *Prefixer) declaration(d *ast.Declaration) error {
	name := d.PropertyName()
	if d.IsDetached() || name.IsPrefixed() || name.IsCustom() {
		return nil
	}
	for _, pf := range p.matrix.PrefixesForProperty(name.Name).Slice() {
		target := name.Prefixed(pf.String())
		if hasDeclaration(d, target) {
			continue
		}
		c := d.Copy()
		c.SetPropertyName(target)
		if err := p.insert(d, c); err != nil {
			return err
		}
	}
	if !strings.Contains(d.RawValue().Content, "(") && d.Value() == nil {
		return nil
	}
	return p.functions(d)
}

// functions adds one copy of d per prefix required by any function in its
// value, with every such function renamed.
func (p *Prefixer) functions(d *ast.Declaration) error {
	value, err := d.PropertyValue()
	if err != nil {
		return err
	}
	var needed prefix.Set
	for t := range value.Terms().All() {
		if f, ok := t.(*ast.FunctionValue); ok && !isPrefixed(f) {
			needed |= p.matrix.PrefixesForFunction(f.Name())
		}
	}
	for _, pf := range needed.Slice() {
		has, err := hasPrefixedFunction(d, pf)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		c := d.Copy()
		for t := range c.Value().Terms().All() {
			f, ok := t.(*ast.FunctionValue)
			if ok && !isPrefixed(f) && p.matrix.RequiresPrefixForFunction(pf, f.Name()) {
				f.SetName(pf.String() + f.Name())
			}
		}
		if err := p.insert(d, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prefixer) insert(before, c *ast.Declaration) error {
	if err := before.Prepend(c); err != nil {
		return err
	}
	p.added++
	return nil
}

func isPrefixed(f *ast.FunctionValue) bool { return f.UnprefixedName() != f.Name() }

func siblings(d *ast.Declaration) []*ast.Declaration {
	g, err := d.Group()
	if err != nil {
		return nil
	}
	return g.Slice()
}

func hasDeclaration(d *ast.Declaration, name ast.PropertyName) bool {
	if g, err := d.Group(); err == nil {
		if r, ok := g.Owner().(*ast.Rule); ok {
			_, found := r.FindDeclaration(name.String())
			return found
		}
	}
	for _, s := range siblings(d) {
		if s != d && s.PropertyName() == name {
			return true
		}
	}
	return false
}

// hasPrefixedFunction reports whether a sibling with the same property
// already uses a function carrying pf. A sibling whose value does not parse
// is an error.
func hasPrefixedFunction(d *ast.Declaration, pf prefix.Prefix) (bool, error) {
	for _, s := range siblings(d) {
		if s == d || s.PropertyName() != d.PropertyName() {
			continue
		}
		v, err := s.PropertyValue()
		if err != nil {
			return false, err
		}
		for t := range v.Terms().All() {
			if f, ok := t.(*ast.FunctionValue); ok {
				if got, _ := prefix.Split(f.Name()); got == pf {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
