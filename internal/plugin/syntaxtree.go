package plugin

import (
	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
)

// SyntaxTree keeps the parsed stylesheet for plugins that need the root.
type SyntaxTree struct {
	sheet *ast.Stylesheet
}

func (*SyntaxTree) Name() string { return "syntax-tree" }

func (t *SyntaxTree) Register(reg *broadcast.Registry, _ *parser.Refiner) error {
	broadcast.Handle(reg, broadcast.PhasePreprocess, ast.KindStylesheet, func(s *ast.Stylesheet) error {
		t.sheet = s
		return nil
	})
	return nil
}

// Stylesheet is the last stylesheet broadcast, or nil.
func (t *SyntaxTree) Stylesheet() *ast.Stylesheet { return t.sheet }
