package driver

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/lexer"
	"stylekit/internal/parser"
	"stylekit/internal/source"
)

// RawStatement is a top-level statement as the parser first sees it,
// before any refinement.
type RawStatement struct {
	Kind   ast.Kind
	Line   int
	Column int
	Head   string // selectors or "@name expression"
	Body   string // raw declarations or block
}

// Tokenize splits input into raw top-level statements.
func Tokenize(name string, input []byte) ([]RawStatement, *source.File, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, input))
	r := parser.NewRefiner(nil, parser.Options{})
	sheet, err := parser.ParseStylesheet(lexer.New(string(file.Content)), broadcast.Discard, r)
	if err != nil {
		return nil, file, err
	}
	var out []RawStatement
	for st := range sheet.Statements().All() {
		rs := RawStatement{Kind: st.Kind(), Line: st.Line(), Column: st.Column()}
		switch st := st.(type) {
		case *ast.Rule:
			var sels []string
			for s := range st.Selectors().All() {
				sels = append(sels, s.Raw().Content)
			}
			rs.Head = strings.Join(sels, ", ")
			var decls []string
			for d := range st.Declarations().All() {
				decls = append(decls, d.RawProperty().Content+": "+d.RawValue().Content)
			}
			rs.Body = strings.Join(decls, "; ")
		case *ast.AtRule:
			rs.Head = "@" + st.Name()
			if expr, ok := st.RawExpression(); ok && !expr.IsEmpty() {
				rs.Head += " " + strings.TrimSpace(expr.Content)
			}
			if block, ok := st.RawBlock(); ok {
				rs.Body = strings.TrimSpace(block.Content)
			}
		}
		out = append(out, rs)
	}
	return out, file, nil
}
