package parser

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
	"stylekit/internal/token"
)

// termListParser reads terms and operators until it meets something no
// term parser accepts. "!important" sets a flag that the caller reads back
// through the broadcast importantMarker.
type termListParser struct {
	f *Factory
}

// importantMarker is broadcast by the important parser. It never leaves the
// declaration strategy.
type importantMarker struct {
	ast.Base
}

func (*importantMarker) Kind() ast.Kind  { return ast.KindInvalid }
func (*importantMarker) IsRefined() bool { return true }

func (p *termListParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	term := Any(p.f.HexColor, p.f.String, p.f.Numerical, p.f.Function, p.f.Keyword)
	matched := false
	important := false
	for {
		m := src.Mark()
		if err := src.CollectComments(); err != nil {
			return matched, err
		}
		if src.EOF() {
			return matched, nil
		}
		if important {
			// nothing may follow !important
			src.Reset(m)
			return matched, nil
		}
		ok, err := p.f.Important.Parse(src, b, r)
		if err != nil {
			return matched, err
		}
		if ok {
			important, matched = true, true
			continue
		}
		if ok, err = p.f.Operator.Parse(src, b, r); err != nil {
			return matched, err
		} else if ok {
			continue
		}
		if ok, err = term.Parse(src, b, r); err != nil {
			return matched, err
		} else if !ok {
			src.Reset(m)
			return matched, nil
		}
		matched = true
	}
}

func parseImportant(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Bang) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	m := src.Mark()
	src.Next()
	src.SkipWhitespace()
	word, ok := src.ReadIdent()
	if !ok || !strings.EqualFold(word, "important") {
		src.Reset(m)
		return false, nil
	}
	b.Broadcast(&importantMarker{Base: ast.NewBase(line, col)})
	return true, nil
}

func parseOperator(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Operator) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	t := ast.OperatorComma
	if src.Next() == '/' {
		t = ast.OperatorSlash
	}
	b.Broadcast(ast.NewOperatorValue(line, col, t))
	return true, nil
}

func parseHexColor(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Hash) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	src.Next()
	hex := src.ReadWhile(token.Hex)
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false, diag.NewSyntaxError(diag.SynUnparsableValue, line, col, "invalid hex color #%s", hex)
	}
	if src.Matches(token.Name) {
		return false, diag.NewSyntaxError(diag.SynUnparsableValue, line, col, "invalid hex color #%s%c", hex, src.Current())
	}
	b.Broadcast(ast.NewHexColorValue(line, col, hex))
	return true, nil
}

func parseString(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	line, col := src.OriginalLine(), src.OriginalColumn()
	s, ok, err := src.ReadString()
	if err != nil || !ok {
		return false, err
	}
	b.Broadcast(ast.NewStringValue(line, col, s[0], s[1:len(s)-1]))
	return true, nil
}

// parseNumerical reads [+-]digits[.digits][unit|%]. A sign or dot that is
// not followed by a digit is left for the keyword parser.
func parseNumerical(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	if !src.Matches(token.Numeric) {
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	m := src.Mark()

	if src.Matches(token.Plus) || src.Matches(token.Hyphen) {
		src.Next()
	}
	intPart := src.ReadWhile(token.Digit)
	frac := ""
	if src.Current() == '.' && token.Digit.Matches(src.Peek(1)) {
		src.Next()
		frac = src.ReadWhile(token.Digit)
	}
	if intPart == "" && frac == "" {
		src.Reset(m)
		return false, nil
	}
	number := src.Since(m)

	unit := ""
	if src.OptionallyPresent(token.Single('%')) {
		unit = "%"
	} else if u, ok := src.ReadIdent(); ok {
		unit = u
	}
	b.Broadcast(ast.NewNumericalValue(line, col, number, unit))
	return true, nil
}

// functionParser reads "name(args)" keeping args raw.
type functionParser struct {
	f *Factory
}

func (p *functionParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	m := src.Mark()
	line, col := src.OriginalLine(), src.OriginalColumn()
	name, ok := src.ReadIdent()
	if !ok || !src.Matches(p.f.Tokens.FunctionStart()) {
		src.Reset(m)
		return false, nil
	}
	argLine, argCol := src.OriginalLine(), src.OriginalColumn()+1
	args, err := src.ChompEnclosedValue(p.f.Tokens.FunctionStart(), p.f.Tokens.FunctionEnd())
	if err != nil {
		return false, err
	}
	b.Broadcast(ast.NewFunctionValue(line, col, name, ast.RawSyntax{Line: argLine, Column: argCol, Content: args}, r))
	return true, nil
}

func parseKeyword(src *lexer.Source, b ast.Broadcaster, _ ast.Refiner) (bool, error) {
	line, col := src.OriginalLine(), src.OriginalColumn()
	word, ok := src.ReadIdent()
	if !ok {
		return false, nil
	}
	b.Broadcast(ast.NewKeywordValue(line, col, word))
	return true, nil
}
