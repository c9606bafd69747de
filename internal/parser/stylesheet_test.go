package parser

import (
	"errors"
	"testing"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
)

func TestRuleStructure(t *testing.T) {
	sheet, q, _ := parse(t, "\n  .a, div > p { color: red; margin : 0 auto }")
	rule := firstRule(t, sheet)
	if rule.Line() != 2 || rule.Column() != 3 {
		t.Errorf("rule at %d:%d, want 2:3", rule.Line(), rule.Column())
	}
	sels := rule.Selectors().Slice()
	if len(sels) != 2 || sels[0].Raw().Content != ".a" || sels[1].Raw().Content != "div > p" {
		t.Fatalf("selectors: %+v", sels)
	}
	decls := rule.Declarations().Slice()
	if len(decls) != 2 {
		t.Fatalf("declarations: %d", len(decls))
	}
	if decls[0].PropertyName().String() != "color" || decls[0].RawValue().Content != "red" {
		t.Errorf("first declaration: %q %q", decls[0].PropertyName(), decls[0].RawValue().Content)
	}
	if decls[1].RawValue().Content != "0 auto" {
		t.Errorf("second value %q", decls[1].RawValue().Content)
	}
	if decls[0].Line() != 2 || decls[0].Column() != 17 {
		t.Errorf("declaration at %d:%d, want 2:17", decls[0].Line(), decls[0].Column())
	}
	if decls[0].IsRefined() || sels[0].IsRefined() {
		t.Errorf("first pass must not refine")
	}

	want := []ast.Kind{ast.KindRule, ast.KindSelector, ast.KindSelector, ast.KindDeclaration, ast.KindDeclaration, ast.KindStylesheet}
	got := kinds(q.All())
	if len(got) != len(want) {
		t.Fatalf("broadcast kinds = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("broadcast kinds = %v, want %v", got, want)
		}
	}
}

func TestChildrenAttachedBeforeBroadcast(t *testing.T) {
	var sawGroup bool
	b := broadcast.Visitor(func(n ast.Syntax) {
		if d, ok := n.(*ast.Declaration); ok {
			g, err := d.Group()
			sawGroup = err == nil && g.Owner() != nil && d.IsFirst()
		}
	})
	r := NewRefiner(b, Options{})
	if _, err := ParseStylesheet(lexer.New(".a{color:red}"), b, r); err != nil {
		t.Fatal(err)
	}
	if !sawGroup {
		t.Fatalf("declaration was broadcast before it was attached")
	}
}

func TestAtRuleRaw(t *testing.T) {
	sheet, _, _ := parse(t, `@import url("x.css") screen;
@font-face { font-family: x; src: url(a.woff) }
.a{b:c}`)
	stmts := sheet.Statements().Slice()
	if len(stmts) != 3 {
		t.Fatalf("statements: %d", len(stmts))
	}
	imp := stmts[0].(*ast.AtRule)
	if imp.Name() != "import" || imp.HasBlock() {
		t.Errorf("import: %q block=%v", imp.Name(), imp.HasBlock())
	}
	if e, ok := imp.RawExpression(); !ok || e.Content != `url("x.css") screen` {
		t.Errorf("import expression %q", e.Content)
	}
	ff := stmts[1].(*ast.AtRule)
	if _, ok := ff.RawExpression(); ok {
		t.Errorf("font-face has no expression")
	}
	if blk, ok := ff.RawBlock(); !ok || blk.Content != " font-family: x; src: url(a.woff) " || blk.Line != 2 {
		t.Errorf("font-face block %+v", blk)
	}
}

func TestComments(t *testing.T) {
	sheet, _, _ := parse(t, "/* head */ .a { /* c1 */ color: red; /* tail */ } /* end */")
	rule := firstRule(t, sheet)
	if c := rule.Comments(); len(c) != 1 || c[0] != "head" {
		t.Errorf("rule comments %q", c)
	}
	d, _ := rule.Declarations().First()
	if c := d.Comments(); len(c) != 1 || c[0] != "c1" {
		t.Errorf("declaration comments %q", c)
	}
	if c := rule.OrphanedComments(); len(c) != 1 || c[0] != "tail" {
		t.Errorf("rule orphaned %q", c)
	}
	if c := sheet.OrphanedComments(); len(c) != 1 || c[0] != "end" {
		t.Errorf("sheet orphaned %q", c)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		css  string
		code diag.Code
		line int
		col  int
	}{
		{"missing at-rule name", "@;", diag.SynMissingAtRuleName, 1, 2},
		{"missing at-rule value", "@import;", diag.SynMissingAtRuleValue, 1, 1},
		{"missing value", ".a{color:}", diag.SynExpectedValue, 1, 10},
		{"missing colon", ".a{color red}", diag.SynExpectedColon, 1, 10},
		{"unclosed block", ".a{color:red", diag.SynUnclosedBlock, 1, 3},
		{"trailing comma", ".a, {}", diag.SynTrailingComma, 1, 5},
		{"missing block", ".a", diag.SynMissingBlock, 1, 3},
		{"stray brace", "}", diag.SynUnexpectedContent, 1, 1},
		{"unclosed comment", ".a{} /* x", diag.SynUnclosedComment, 1, 6},
		{"nested rule in block", ".a{ .b{} }", diag.SynUnexpectedContent, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRefiner(nil, Options{})
			_, err := ParseStylesheet(lexer.New(tt.css), broadcast.Discard, r)
			if !errors.Is(err, diag.ErrSyntax) {
				t.Fatalf("got %v, want syntax error", err)
			}
			var se *diag.SyntaxError
			errors.As(err, &se)
			if se.Code != tt.code {
				t.Errorf("code = %v, want %v (%v)", se.Code.ID(), tt.code.ID(), err)
			}
			if se.Line != tt.line || se.Column != tt.col {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Column, tt.line, tt.col)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	sheet, q, _ := parse(t, "  \n\t ")
	if !sheet.Statements().IsEmpty() {
		t.Fatalf("expected no statements")
	}
	if len(q.All()) != 1 {
		t.Fatalf("only the stylesheet should be broadcast")
	}
}

func TestNoMatchConsumesNothing(t *testing.T) {
	f := NewFactory(nil)
	r := NewRefiner(nil, Options{})
	tests := []struct {
		name string
		p    Parser
		css  string
	}{
		{"at-rule", f.AtRule, "/* c */ .a{}"},
		{"rule", f.Rule, "/* c */ ;"},
		{"selector", f.RawSelector, "/* c */ {"},
		{"declaration", f.RawDeclaration, "/* c */ ;"},
		{"declaration without name", f.RawDeclaration, " -; "},
		{"statement", f.Statement, "  /* c */ }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := lexer.New(tt.css)
			ok, err := tt.p.Parse(src, broadcast.NewQueryable(nil), r)
			if err != nil || ok {
				t.Fatalf("Parse = %v, %v; want no match", ok, err)
			}
			if src.Index() != 0 {
				t.Errorf("consumed %q", tt.css[:src.Index()])
			}
			if c := src.FlushComments(); len(c) != 0 {
				t.Errorf("comments left buffered: %q", c)
			}
		})
	}
}
