package parser

import (
	"testing"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/lexer"
)

// parse runs the stylesheet parser and returns the tree and every node
// that reached the outer broadcaster.
func parse(t *testing.T, css string) (*ast.Stylesheet, *broadcast.Queryable, *Refiner) {
	t.Helper()
	q := broadcast.NewQueryable(nil)
	r := NewRefiner(q, Options{})
	sheet, err := ParseStylesheet(lexer.New(css), q, r)
	if err != nil {
		t.Fatalf("parse %q: %v", css, err)
	}
	return sheet, q, r
}

func firstRule(t *testing.T, sheet *ast.Stylesheet) *ast.Rule {
	t.Helper()
	st, ok := sheet.Statements().First()
	if !ok {
		t.Fatalf("no statements")
	}
	rule, ok := st.(*ast.Rule)
	if !ok {
		t.Fatalf("first statement is %T", st)
	}
	return rule
}

func kinds(nodes []ast.Syntax) []ast.Kind {
	out := make([]ast.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}
