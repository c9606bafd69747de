package plugin

import (
	"fmt"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/parser"
	"stylekit/internal/trace"
)

// DuplicateDeclarations warns about a property declared twice with the
// same name in one rule or @font-face block. Warnings never stop processing.
type DuplicateDeclarations struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

func (*DuplicateDeclarations) Name() string { return "duplicate-declarations" }

func (v *DuplicateDeclarations) Dependencies() []Plugin {
	return []Plugin{NestedAtRules{}, &AutoRefine{AtRules: true}}
}

func (v *DuplicateDeclarations) Register(reg *broadcast.Registry, _ *parser.Refiner) error {
	broadcast.Handle(reg, broadcast.PhaseValidate, ast.KindRule, func(r *ast.Rule) error {
		v.check(r.Declarations())
		return nil
	})
	broadcast.Handle(reg, broadcast.PhaseValidate, ast.KindFontFaceBlock, func(b *ast.FontFaceBlock) error {
		v.check(b.Descriptors())
		return nil
	})
	return nil
}

func (v *DuplicateDeclarations) check(c *ast.Collection[*ast.Declaration]) {
	seen := make(map[ast.PropertyName]bool, c.Len())
	for d := range c.All() {
		name := d.PropertyName()
		if !seen[name] {
			seen[name] = true
			continue
		}
		msg := fmt.Sprintf("property %q is declared more than once", name.String())
		diag.Warn(v.Reporter, diag.ValDuplicateDeclaration, d.Line(), d.Column(), msg)
		trace.Point(v.Tracer, trace.ScopeNode, "duplicate-declaration", msg, 0)
	}
}

// SelectorDepth rejects selectors with more than Max parts, combinators
// included.
type SelectorDepth struct {
	Max int
}

func (*SelectorDepth) Name() string { return "selector-depth" }

func (v *SelectorDepth) Register(reg *broadcast.Registry, _ *parser.Refiner) error {
	if v.Max <= 0 {
		return nil
	}
	broadcast.Handle(reg, broadcast.PhaseValidate, ast.KindSelector, func(s *ast.Selector) error {
		if err := s.Refine(); err != nil {
			return err
		}
		if n := s.Parts().Len(); n > v.Max {
			return &diag.ValidationError{
				Code:    diag.ValSelectorTooDeep,
				Line:    s.Line(),
				Column:  s.Column(),
				Message: fmt.Sprintf("selector has %d parts, the limit is %d", n, v.Max),
			}
		}
		return nil
	})
	return nil
}
