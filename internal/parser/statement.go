package parser

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
	"stylekit/internal/token"
)

// rawAtRuleParser reads "@name expression;" or "@name expression { block }"
// without looking inside the expression or block.
type rawAtRuleParser struct {
	f *Factory
}

func (p *rawAtRuleParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	start, err := leadIn(src)
	if err != nil {
		return false, err
	}
	if !src.Matches(token.At) {
		src.Reset(start)
		return false, nil
	}
	line, col := src.OriginalLine(), src.OriginalColumn()
	src.Next()

	name, ok := src.ReadIdent()
	if !ok {
		return false, src.Errorf(diag.SynMissingAtRuleName, "")
	}
	tok := p.f.Tokens

	src.SkipWhitespace()
	exprLine, exprCol := src.OriginalLine(), src.OriginalColumn()
	expr := strings.TrimSpace(src.Until(tok.AtRuleExpressionEnd()))

	var expression, block *ast.RawSyntax
	if expr != "" {
		expression = &ast.RawSyntax{Line: exprLine, Column: exprCol, Content: expr}
	}
	switch {
	case src.OptionallyPresent(tok.AtRuleTermination()):
	case src.Matches(tok.AtRuleBlockBegin()):
		blockLine, blockCol := src.OriginalLine(), src.OriginalColumn()+1
		content, err := src.ChompEnclosedValue(tok.AtRuleBlockBegin(), tok.AtRuleBlockEnd())
		if err != nil {
			return false, err
		}
		block = &ast.RawSyntax{Line: blockLine, Column: blockCol, Content: content}
	}
	if expression == nil && block == nil {
		return false, diag.NewSyntaxError(diag.SynMissingAtRuleValue, line, col, "@%s", name)
	}

	at := ast.NewAtRule(line, col, name, expression, block, r)
	attachComments(at, src)
	b.Broadcast(at)
	return true, nil
}

// ruleParser reads "selector, selector { declarations }". Selectors and
// declarations stay raw.
type ruleParser struct {
	f *Factory
}

func (p *ruleParser) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	start, err := leadIn(src)
	if err != nil {
		return false, err
	}
	if !src.Matches(token.SelectorStart) {
		src.Reset(start)
		return false, nil
	}
	tok := p.f.Tokens
	rule := ast.NewRule(src.OriginalLine(), src.OriginalColumn())
	attachComments(rule, src)

	// children wait until the rule itself has been announced
	queue := broadcast.NewPausedQueue(b)
	q := broadcast.NewQueryable(queue)

	for {
		ok, err := p.f.RawSelector.Parse(src, q, r)
		if err != nil {
			return false, err
		}
		if !ok {
			if err := src.CollectComments(); err != nil {
				return false, err
			}
			if len(q.Filter(ast.KindSelector)) > 0 {
				return false, src.Errorf(diag.SynTrailingComma, "")
			}
			return false, src.Errorf(diag.SynUnparsableSelector, "")
		}
		if !src.OptionallyPresent(tok.SelectorGroupDelimiter()) {
			break
		}
	}
	for _, s := range broadcast.FilterAs[*ast.Selector](q) {
		rule.Selectors().Append(s)
	}

	if !src.Matches(tok.DeclarationBlockBegin()) {
		return false, src.Errorf(diag.SynMissingBlock, "")
	}
	blockLine, blockCol := src.OriginalLine(), src.OriginalColumn()+1
	content, err := src.ChompEnclosedValue(tok.DeclarationBlockBegin(), tok.DeclarationBlockEnd())
	if err != nil {
		return false, err
	}
	if err := p.f.parseDeclarations(lexer.NewSub(content, blockLine, blockCol), q, r, rule, rule.Declarations()); err != nil {
		return false, err
	}

	b.Broadcast(rule)
	queue.Resume()
	return true, nil
}

// parseDeclarations fills into with the raw declarations of a block owned
// by owner.
func (f *Factory) parseDeclarations(src *lexer.Source, q *broadcast.Queryable, r ast.Refiner, owner ast.Syntax, into *ast.Collection[*ast.Declaration]) error {
	tok := f.Tokens
	for {
		if err := src.CollectComments(); err != nil {
			return err
		}
		if src.EOF() {
			orphanComments(owner, src)
			return nil
		}
		// stray ';'
		if src.OptionallyPresent(tok.DeclarationDelimiter()) {
			continue
		}
		before := len(q.All())
		ok, err := f.RawDeclaration.Parse(src, q, r)
		if err != nil {
			return err
		}
		if !ok {
			return src.Errorf(diag.SynUnexpectedContent, "unexpected %q in declaration block", src.Current())
		}
		for _, n := range q.All()[before:] {
			if d, isDecl := n.(*ast.Declaration); isDecl {
				into.Append(d)
			}
		}
	}
}

// leadIn consumes comments and whitespace before a construct. Parsers that
// then find no match reset to the returned mark so they consume nothing.
func leadIn(src *lexer.Source) (lexer.Mark, error) {
	m := src.Mark()
	return m, src.CollectComments()
}
