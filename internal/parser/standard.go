package parser

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
)

// StandardSelector parses the raw selector into parts. Parts are buffered
// until all of them are attached, so listeners see a complete selector.
func StandardSelector(s *ast.Selector, r *Refiner) (bool, error) {
	raw := s.Raw()
	src := lexer.NewSub(raw.Content, raw.Line, raw.Column)

	queue := broadcast.NewPausedQueue(r.Broadcaster())
	q := broadcast.NewQueryable(queue)
	if _, err := r.factory.ComplexSelector.Parse(src, q, r); err != nil {
		return false, err
	}
	if err := src.CollectComments(); err != nil {
		return false, err
	}
	orphanComments(s, src)
	if !src.EOF() {
		return false, src.Errorf(diag.SynUnparsableSelector, "unexpected %q", src.Rest())
	}
	for _, n := range q.All() {
		if part, ok := n.(ast.SelectorPart); ok {
			s.Parts().Append(part)
		}
	}
	queue.Resume()
	return true, nil
}

// StandardDeclaration parses the raw value into a PropertyValue.
func StandardDeclaration(d *ast.Declaration, r *Refiner) (bool, error) {
	raw := d.RawValue()
	src := lexer.NewSub(raw.Content, raw.Line, raw.Column)

	q := broadcast.NewQueryable(nil)
	if _, err := r.factory.TermList.Parse(src, q, r); err != nil {
		return false, err
	}
	value := ast.NewPropertyValue(raw.Line, raw.Column)
	if err := src.CollectComments(); err != nil {
		return false, err
	}
	orphanComments(value, src)
	if !src.EOF() {
		return false, src.Errorf(diag.SynUnparsableValue, "unexpected %q", src.Rest())
	}

	var terms []ast.Term
	for _, n := range q.All() {
		switch n := n.(type) {
		case *importantMarker:
			value.SetImportant(true)
		case ast.Term:
			terms = append(terms, n)
		}
	}
	if len(terms) == 0 {
		return false, diag.NewSyntaxError(diag.SynExpectedValue, raw.Line, raw.Column, "for %q", d.PropertyName().String())
	}
	value.Terms().AppendAll(terms...)
	d.SetPropertyValue(value)

	b := r.Broadcaster()
	b.Broadcast(value)
	for _, t := range terms {
		b.Broadcast(t)
	}
	return true, nil
}

// StandardFunction refines url(); every other function keeps raw
// arguments.
func StandardFunction(f *ast.FunctionValue, r *Refiner) (bool, error) {
	if !strings.EqualFold(f.Name(), "url") {
		return false, nil
	}
	raw := f.RawArgs()
	arg := strings.TrimSpace(raw.Content)
	var quote byte
	if n := len(arg); n >= 2 && (arg[0] == '"' || arg[0] == '\'') {
		if arg[n-1] != arg[0] {
			return false, diag.NewSyntaxError(diag.SynUnclosedString, raw.Line, raw.Column, "in url()")
		}
		quote = arg[0]
		arg = arg[1 : n-1]
	}
	u := ast.NewURLFunctionValue(f.Line(), f.Column(), arg, quote)
	f.SetRefined(u)
	r.Broadcaster().Broadcast(u)
	return true, nil
}

// conditionalAtRules hold nested statements rather than declarations.
var conditionalAtRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"document":  true,
	"layer":     true,
	"container": true,
}

// NestedBlocks is an at-rule strategy for conditional group rules such as
// @media. The expression is kept with its whitespace collapsed and its
// comments moved onto the at-rule; the block is parsed into a
// StatementsBlock of raw statements.
func NestedBlocks(a *ast.AtRule, r *Refiner) (bool, error) {
	name := strings.ToLower(a.Name())
	if i := strings.LastIndexByte(name, '-'); i > 0 && name[0] == '-' {
		name = name[i+1:]
	}
	raw, ok := a.RawBlock()
	if !conditionalAtRules[name] || !ok {
		return false, nil
	}
	if expr, ok := a.RawExpression(); ok {
		text, comments := stripComments(expr.Content)
		a.AddComments(comments...)
		a.SetExpression(ast.NewRawText(expr.Line, expr.Column, strings.Join(strings.Fields(text), " ")))
	}

	block := ast.NewStatementsBlock(raw.Line, raw.Column)
	queue := broadcast.NewPausedQueue(r.Broadcaster())
	src := lexer.NewSub(raw.Content, raw.Line, raw.Column)
	if err := r.factory.Stylesheet.parseStatements(src, queue, r, block, block.Statements()); err != nil {
		return false, err
	}
	a.SetBlock(block)
	r.Broadcaster().Broadcast(block)
	queue.Resume()
	return true, nil
}

// FontFaceBlocks is an at-rule strategy for @font-face. The block is
// parsed into raw declarations, one per font descriptor, which reach the
// broadcaster after the block. An @font-face with an expression is left
// alone.
func FontFaceBlocks(a *ast.AtRule, r *Refiner) (bool, error) {
	if !strings.EqualFold(a.Name(), "font-face") {
		return false, nil
	}
	raw, ok := a.RawBlock()
	if !ok {
		return false, nil
	}
	if expr, ok := a.RawExpression(); ok && !expr.IsEmpty() {
		return false, nil
	}

	block := ast.NewFontFaceBlock(raw.Line, raw.Column)
	queue := broadcast.NewPausedQueue(r.Broadcaster())
	q := broadcast.NewQueryable(queue)
	src := lexer.NewSub(raw.Content, raw.Line, raw.Column)
	if err := r.factory.parseDeclarations(src, q, r, block, block.Descriptors()); err != nil {
		return false, err
	}
	a.SetBlock(block)
	r.Broadcaster().Broadcast(block)
	queue.Resume()
	return true, nil
}

// stripComments removes block comments outside quoted strings, leaving a
// space in their place, and returns the trimmed comment bodies. An
// unterminated comment runs to the end of s.
func stripComments(s string) (string, []string) {
	if !strings.Contains(s, "/*") {
		return s, nil
	}
	var b strings.Builder
	var comments []string
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			body, _, closed := strings.Cut(s[i+2:], "*/")
			comments = append(comments, strings.TrimSpace(body))
			b.WriteByte(' ')
			if !closed {
				return b.String(), comments
			}
			i += len(body) + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), comments
}
