package ast

// Statement is a member of a stylesheet or of a nested block: a rule or an
// at-rule.
type Statement interface {
	Syntax
	Links() *Groupable[Statement]
}

// Stylesheet is the root of the tree.
type Stylesheet struct {
	Base
	statements *Collection[Statement]
}

func NewStylesheet() *Stylesheet {
	s := &Stylesheet{Base: NewBase(1, 1)}
	s.statements = NewCollection[Statement](s)
	return s
}

func (s *Stylesheet) Kind() Kind      { return KindStylesheet }
func (s *Stylesheet) IsRefined() bool { return true }

func (s *Stylesheet) Statements() *Collection[Statement] { return s.statements }

// Rule is a selector group with its declaration block.
type Rule struct {
	Base
	Groupable[Statement]
	selectors    *Collection[*Selector]
	declarations *Collection[*Declaration]
}

func NewRule(line, column int) *Rule {
	r := &Rule{Base: NewBase(line, column)}
	r.selectors = NewCollection[*Selector](r)
	r.declarations = NewCollection[*Declaration](r)
	return r
}

func (r *Rule) Kind() Kind      { return KindRule }
func (r *Rule) IsRefined() bool { return true }

func (r *Rule) Selectors() *Collection[*Selector]       { return r.selectors }
func (r *Rule) Declarations() *Collection[*Declaration] { return r.declarations }

// FindDeclaration returns the first declaration whose property name matches
// name exactly (prefix included).
func (r *Rule) FindDeclaration(name string) (*Declaration, bool) {
	for d := range r.declarations.All() {
		if d.PropertyName().String() == name {
			return d, true
		}
	}
	return nil, false
}

// AtRule is an @-construct. Expression and block stay raw until a strategy
// refines them; without one the at-rule is written verbatim.
type AtRule struct {
	Base
	Groupable[Statement]
	refineState

	name          string
	rawExpression *RawSyntax
	rawBlock      *RawSyntax
	expression    Syntax
	block         Syntax
}

// NewAtRule creates an at-rule. expression and block may be nil but not
// both.
func NewAtRule(line, column int, name string, expression, block *RawSyntax, r Refiner) *AtRule {
	a := &AtRule{Base: NewBase(line, column), name: name, rawExpression: expression, rawBlock: block}
	a.refiner = r
	return a
}

func (a *AtRule) Kind() Kind      { return KindAtRule }
func (a *AtRule) IsRefined() bool { return a.refined }

// Name is the at-rule name without '@'.
func (a *AtRule) Name() string { return a.name }

func (a *AtRule) RawExpression() (RawSyntax, bool) {
	if a.rawExpression == nil {
		return RawSyntax{}, false
	}
	return *a.rawExpression, true
}

func (a *AtRule) RawBlock() (RawSyntax, bool) {
	if a.rawBlock == nil {
		return RawSyntax{}, false
	}
	return *a.rawBlock, true
}

// HasBlock reports whether the at-rule ended with a {...} block rather
// than ';'.
func (a *AtRule) HasBlock() bool { return a.rawBlock != nil || a.block != nil }

// Expression is the refined expression, or nil.
func (a *AtRule) Expression() Syntax { return a.expression }

// Block is the refined block, or nil.
func (a *AtRule) Block() Syntax { return a.block }

// SetExpression is called by refinement strategies.
func (a *AtRule) SetExpression(n Syntax) { a.expression = n }

// SetBlock is called by refinement strategies.
func (a *AtRule) SetBlock(n Syntax) { a.block = n }

// Refine runs the at-rule strategies once.
func (a *AtRule) Refine() error {
	return a.run(&a.Base, "refine at-rule", func(r Refiner) (bool, error) {
		return r.RefineAtRule(a)
	})
}

// StatementsBlock holds the nested statements of a block at-rule such as
// @media.
type StatementsBlock struct {
	Base
	statements *Collection[Statement]
}

func NewStatementsBlock(line, column int) *StatementsBlock {
	b := &StatementsBlock{Base: NewBase(line, column)}
	b.statements = NewCollection[Statement](b)
	return b
}

func (b *StatementsBlock) Kind() Kind      { return KindStatementsBlock }
func (b *StatementsBlock) IsRefined() bool { return true }

func (b *StatementsBlock) Statements() *Collection[Statement] { return b.statements }

// FontFaceBlock is the block of an @font-face rule. Its font descriptors
// are ordinary declarations.
type FontFaceBlock struct {
	Base
	descriptors *Collection[*Declaration]
}

func NewFontFaceBlock(line, column int) *FontFaceBlock {
	b := &FontFaceBlock{Base: NewBase(line, column)}
	b.descriptors = NewCollection[*Declaration](b)
	return b
}

func (b *FontFaceBlock) Kind() Kind      { return KindFontFaceBlock }
func (b *FontFaceBlock) IsRefined() bool { return true }

func (b *FontFaceBlock) Descriptors() *Collection[*Declaration] { return b.descriptors }
