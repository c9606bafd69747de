package plugin

import (
	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
)

// AutoRefine refines nodes as soon as they are broadcast, so later phases
// see the full structure.
type AutoRefine struct {
	Selectors    bool
	Declarations bool
	AtRules      bool
	Functions    bool
}

// AllRefinement refines everything.
func AllRefinement() *AutoRefine {
	return &AutoRefine{Selectors: true, Declarations: true, AtRules: true, Functions: true}
}

func (*AutoRefine) Name() string { return "auto-refine" }

func (a *AutoRefine) Register(reg *broadcast.Registry, _ *parser.Refiner) error {
	if a.Selectors {
		broadcast.Handle(reg, broadcast.PhasePreprocess, ast.KindSelector, (*ast.Selector).Refine)
	}
	if a.Declarations {
		broadcast.Handle(reg, broadcast.PhasePreprocess, ast.KindDeclaration, (*ast.Declaration).Refine)
	}
	if a.AtRules {
		broadcast.Handle(reg, broadcast.PhasePreprocess, ast.KindAtRule, (*ast.AtRule).Refine)
	}
	if a.Functions {
		broadcast.Handle(reg, broadcast.PhasePreprocess, ast.KindFunctionValue, (*ast.FunctionValue).Refine)
	}
	return nil
}
