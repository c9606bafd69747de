package parser

import (
	"stylekit/internal/ast"
	"stylekit/internal/lexer"
	"stylekit/internal/token"
)

// Parser consumes one construct from src.
type Parser interface {
	Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error)
}

// Func adapts a function to Parser.
type Func func(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error)

func (f Func) Parse(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
	return f(src, b, r)
}

// DefaultMaxDepth bounds nested refinement (at-rule blocks inside at-rule
// blocks and similar).
const DefaultMaxDepth = 64

// Options tune parsing and refinement.
type Options struct {
	// MaxDepth bounds nested refinement; 0 means DefaultMaxDepth.
	MaxDepth int
	// Tokens overrides the grammar delimiters; nil means token.Standard.
	Tokens token.Factory
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Tokens == nil {
		o.Tokens = token.Standard{}
	}
	return o
}

// Factory bundles the parser singletons for one token factory.
type Factory struct {
	Tokens token.Factory

	Stylesheet      *StylesheetParser
	Statement       Parser
	AtRule          Parser
	Rule            Parser
	RawSelector     Parser
	RawDeclaration  Parser
	ComplexSelector Parser
	Combinator      Parser
	Class           Parser
	ID              Parser
	Type            Parser
	Attribute       Parser
	Pseudo          Parser
	TermList        Parser
	Important       Parser
	HexColor        Parser
	String          Parser
	Numerical       Parser
	Function        Parser
	Keyword         Parser
	Operator        Parser
}

// NewFactory wires the parsers against tokens (nil means token.Standard).
func NewFactory(tokens token.Factory) *Factory {
	if tokens == nil {
		tokens = token.Standard{}
	}
	f := &Factory{Tokens: tokens}
	f.Stylesheet = &StylesheetParser{f: f}
	f.AtRule = &rawAtRuleParser{f: f}
	f.Rule = &ruleParser{f: f}
	f.Statement = Any(f.AtRule, f.Rule)
	f.RawSelector = &rawSelectorParser{f: f}
	f.RawDeclaration = &rawDeclarationParser{f: f}
	f.ComplexSelector = &complexSelectorParser{f: f}
	f.Combinator = Func(parseCombinator)
	f.Class = Func(parseClass)
	f.ID = Func(parseID)
	f.Type = Func(parseTypeOrUniversal)
	f.Attribute = Func(parseAttribute)
	f.Pseudo = Func(parsePseudo)
	f.TermList = &termListParser{f: f}
	f.Important = Func(parseImportant)
	f.HexColor = Func(parseHexColor)
	f.String = Func(parseString)
	f.Numerical = Func(parseNumerical)
	f.Function = &functionParser{f: f}
	f.Keyword = Func(parseKeyword)
	f.Operator = Func(parseOperator)
	return f
}

// Any tries each parser in order and stops at the first match.
func Any(parsers ...Parser) Parser {
	return Func(func(src *lexer.Source, b ast.Broadcaster, r ast.Refiner) (bool, error) {
		for _, p := range parsers {
			ok, err := p.Parse(src, b, r)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	})
}

func attachComments(n ast.Syntax, src *lexer.Source) {
	if c := src.FlushComments(); len(c) > 0 {
		n.AddComments(c...)
	}
}

func orphanComments(n ast.Syntax, src *lexer.Source) {
	if c := src.FlushComments(); len(c) > 0 {
		n.AddOrphanedComments(c...)
	}
}
