package token

// Factory supplies the grammar-level delimiters used by the parsers.
type Factory interface {
	AtRuleExpressionEnd() Token
	AtRuleTermination() Token
	AtRuleBlockBegin() Token
	AtRuleBlockEnd() Token
	SelectorEnd() Token
	SelectorGroupDelimiter() Token
	DeclarationBlockBegin() Token
	DeclarationBlockEnd() Token
	DeclarationEnd() Token
	DeclarationDelimiter() Token
	PropertyNameEnd() Token
	FunctionStart() Token
	FunctionEnd() Token
}

// Standard is the CSS token factory.
type Standard struct{}

func (Standard) AtRuleExpressionEnd() Token    { return Or(Semicolon, OpenBrace) }
func (Standard) AtRuleTermination() Token      { return Semicolon }
func (Standard) AtRuleBlockBegin() Token       { return OpenBrace }
func (Standard) AtRuleBlockEnd() Token         { return CloseBrace }
func (Standard) SelectorEnd() Token            { return Or(OpenBrace, Comma) }
func (Standard) SelectorGroupDelimiter() Token { return Comma }
func (Standard) DeclarationBlockBegin() Token  { return OpenBrace }
func (Standard) DeclarationBlockEnd() Token    { return CloseBrace }
func (Standard) DeclarationEnd() Token         { return Or(Semicolon, CloseBrace) }
func (Standard) DeclarationDelimiter() Token   { return Semicolon }
func (Standard) PropertyNameEnd() Token        { return Colon }
func (Standard) FunctionStart() Token          { return OpenParen }
func (Standard) FunctionEnd() Token            { return CloseParen }
