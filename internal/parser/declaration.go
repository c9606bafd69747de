package parser

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
	"stylekit/internal/token"
)

// rawDeclarationParser reads "name: value" up to ';' and keeps the value
// raw.
type rawDeclarationParser struct {
	f *Factory
}

func (p *rawDeclarationParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	start, err := leadIn(src)
	if err != nil {
		return false, err
	}
	if !src.Matches(token.NameStart) && !src.Matches(token.Hyphen) {
		src.Reset(start)
		return false, nil
	}
	tok := p.f.Tokens
	line, col := src.OriginalLine(), src.OriginalColumn()
	name, ok := src.ReadIdent()
	if !ok {
		src.Reset(start)
		return false, nil
	}
	if err := src.CollectComments(); err != nil {
		return false, err
	}
	if !src.OptionallyPresent(tok.PropertyNameEnd()) {
		return false, src.Errorf(diag.SynExpectedColon, "after %q", name)
	}
	src.SkipWhitespace()

	valueLine, valueCol := src.OriginalLine(), src.OriginalColumn()
	value := strings.TrimSpace(src.Until(tok.DeclarationEnd()))
	if value == "" {
		return false, diag.NewSyntaxError(diag.SynExpectedValue, valueLine, valueCol, "for %q", name)
	}
	src.OptionallyPresent(tok.DeclarationDelimiter())

	d := ast.NewDeclaration(
		ast.RawSyntax{Line: line, Column: col, Content: name},
		ast.RawSyntax{Line: valueLine, Column: valueCol, Content: value},
		r,
	)
	attachComments(d, src)
	b.Broadcast(d)
	return true, nil
}
