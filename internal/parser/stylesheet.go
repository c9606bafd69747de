package parser

import (
	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
)

// StylesheetParser parses a whole document into a Stylesheet.
type StylesheetParser struct {
	f *Factory
}

// Parse always matches. The stylesheet is broadcast after its statements.
func (p *StylesheetParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	sheet := ast.NewStylesheet()
	if err := p.parseStatements(src, b, r, sheet, sheet.Statements()); err != nil {
		return true, err
	}
	b.Broadcast(sheet)
	return true, nil
}

// ParseSheet is Parse returning the stylesheet.
func (p *StylesheetParser) ParseSheet(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (*ast.Stylesheet, error) {
	q := broadcast.NewQueryable(b)
	if _, err := p.Parse(src, q, r); err != nil {
		return nil, err
	}
	sheet, _ := broadcast.FindAs[*ast.Stylesheet](q)
	return sheet, nil
}

// parseStatements fills into from src until end of input. Each statement
// is attached before it and its children reach b, so listeners can query
// its siblings.
func (p *StylesheetParser) parseStatements(src *lexer.Source, b ast.Broadcaster, r ast.Refiner, owner ast.Syntax, into *ast.Collection[ast.Statement]) error {
	for {
		if err := src.CollectComments(); err != nil {
			return err
		}
		if src.EOF() {
			orphanComments(owner, src)
			return nil
		}
		queue := broadcast.NewPausedQueue(b)
		q := broadcast.NewQueryable(queue)
		ok, err := p.f.Statement.Parse(src, q, r)
		if err != nil {
			return err
		}
		if !ok {
			return src.Errorf(diag.SynUnexpectedContent, "unexpected %q", src.Current())
		}
		if st, found := broadcast.FindAs[ast.Statement](q); found {
			into.Append(st)
		}
		queue.Resume()
	}
}

// ParseStylesheet parses src with r's parsers, broadcasting to b.
func ParseStylesheet(src *lexer.Source, b ast.Broadcaster, r *Refiner) (*ast.Stylesheet, error) {
	return r.factory.Stylesheet.ParseSheet(src, b, r)
}
