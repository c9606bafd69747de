package ast

// Selector is one comma-separated member of a rule's selector group.
type Selector struct {
	Base
	Groupable[*Selector]
	refineState

	raw   RawSyntax
	parts *Collection[SelectorPart]
}

// NewSelector wraps raw selector text for later refinement.
func NewSelector(raw RawSyntax, r Refiner) *Selector {
	s := &Selector{Base: NewBase(raw.Line, raw.Column), raw: raw}
	s.parts = NewCollection[SelectorPart](s)
	s.refiner = r
	return s
}

// NewSelectorFromParts builds an already refined selector.
func NewSelectorFromParts(line, column int, parts ...SelectorPart) *Selector {
	s := &Selector{Base: NewBase(line, column)}
	s.parts = NewCollection[SelectorPart](s)
	s.parts.AppendAll(parts...)
	s.markRefined()
	return s
}

func (s *Selector) Kind() Kind      { return KindSelector }
func (s *Selector) IsRefined() bool { return s.refined }
func (s *Selector) Raw() RawSyntax  { return s.raw }

// Parts is the part list. It is empty until the selector is refined.
func (s *Selector) Parts() *Collection[SelectorPart] { return s.parts }

// Refine parses the raw text into parts once.
func (s *Selector) Refine() error {
	return s.run(&s.Base, "refine selector", func(r Refiner) (bool, error) {
		return r.RefineSelector(s)
	})
}

// SelectorPart is a simple selector or a combinator.
type SelectorPart interface {
	Syntax
	Links() *Groupable[SelectorPart]
}

type partBase struct {
	Base
	Groupable[SelectorPart]
}

func newPartBase(line, column int) partBase {
	return partBase{Base: NewBase(line, column)}
}

func (partBase) IsRefined() bool { return true }

// ClassSelector is ".name".
type ClassSelector struct {
	partBase
	Name string
}

func NewClassSelector(line, column int, name string) *ClassSelector {
	return &ClassSelector{partBase: newPartBase(line, column), Name: name}
}

func (*ClassSelector) Kind() Kind { return KindClassSelector }

// IDSelector is "#name".
type IDSelector struct {
	partBase
	Name string
}

func NewIDSelector(line, column int, name string) *IDSelector {
	return &IDSelector{partBase: newPartBase(line, column), Name: name}
}

func (*IDSelector) Kind() Kind { return KindIDSelector }

// TypeSelector is an element name, optionally namespaced ("svg|rect").
type TypeSelector struct {
	partBase
	Name string
}

func NewTypeSelector(line, column int, name string) *TypeSelector {
	return &TypeSelector{partBase: newPartBase(line, column), Name: name}
}

func (*TypeSelector) Kind() Kind { return KindTypeSelector }

// UniversalSelector is "*".
type UniversalSelector struct {
	partBase
}

func NewUniversalSelector(line, column int) *UniversalSelector {
	return &UniversalSelector{partBase: newPartBase(line, column)}
}

func (*UniversalSelector) Kind() Kind { return KindUniversalSelector }

// AttributeSelector is "[name]" or "[name<match>value]". Value keeps its
// quotes when the source had them.
type AttributeSelector struct {
	partBase
	Name  string
	Match string
	Value string
}

func NewAttributeSelector(line, column int, name, match, value string) *AttributeSelector {
	return &AttributeSelector{partBase: newPartBase(line, column), Name: name, Match: match, Value: value}
}

func (*AttributeSelector) Kind() Kind { return KindAttributeSelector }

// PseudoClassSelector is ":name" or ":name(args)".
type PseudoClassSelector struct {
	partBase
	Name    string
	Args    string
	HasArgs bool
}

func NewPseudoClassSelector(line, column int, name string) *PseudoClassSelector {
	return &PseudoClassSelector{partBase: newPartBase(line, column), Name: name}
}

// WithArgs sets the parenthesised argument text.
func (p *PseudoClassSelector) WithArgs(args string) *PseudoClassSelector {
	p.Args, p.HasArgs = args, true
	return p
}

func (*PseudoClassSelector) Kind() Kind { return KindPseudoClassSelector }

// PseudoElementSelector is "::name" or "::name(args)". Legacy is set for
// the single colon CSS2 form (":before").
type PseudoElementSelector struct {
	partBase
	Name    string
	Legacy  bool
	Args    string
	HasArgs bool
}

func NewPseudoElementSelector(line, column int, name string, legacy bool) *PseudoElementSelector {
	return &PseudoElementSelector{partBase: newPartBase(line, column), Name: name, Legacy: legacy}
}

// WithArgs sets the parenthesised argument text, as in "::part(label)".
func (p *PseudoElementSelector) WithArgs(args string) *PseudoElementSelector {
	p.Args, p.HasArgs = args, true
	return p
}

func (*PseudoElementSelector) Kind() Kind { return KindPseudoElementSelector }

// CombinatorType enumerates selector combinators.
type CombinatorType uint8

const (
	Descendant CombinatorType = iota
	Child
	AdjacentSibling
	GeneralSibling
)

// Symbol is the combinator text; descendant is a single space.
func (c CombinatorType) Symbol() string {
	switch c {
	case Child:
		return ">"
	case AdjacentSibling:
		return "+"
	case GeneralSibling:
		return "~"
	}
	return " "
}

// Combinator joins two compound selectors.
type Combinator struct {
	partBase
	Type CombinatorType
}

func NewCombinator(line, column int, t CombinatorType) *Combinator {
	return &Combinator{partBase: newPartBase(line, column), Type: t}
}

func (*Combinator) Kind() Kind { return KindCombinator }

// Legacy pseudo elements accepted with a single colon.
var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
}

// IsLegacyPseudoElement reports whether ":name" denotes a pseudo element.
func IsLegacyPseudoElement(name string) bool {
	return legacyPseudoElements[name]
}
