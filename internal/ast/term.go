package ast

import "strings"

// Term is one member of a property value.
type Term interface {
	Syntax
	Links() *Groupable[Term]
	// CopyTerm returns a detached copy with a fresh identity.
	CopyTerm() Term
}

type termBase struct {
	Base
	Groupable[Term]
}

func newTermBase(line, column int) termBase {
	return termBase{Base: NewBase(line, column)}
}

func (termBase) IsRefined() bool { return true }

// KeywordValue is an identifier such as "red" or "inherit".
type KeywordValue struct {
	termBase
	Keyword string
}

func NewKeywordValue(line, column int, keyword string) *KeywordValue {
	return &KeywordValue{termBase: newTermBase(line, column), Keyword: keyword}
}

func (*KeywordValue) Kind() Kind { return KindKeywordValue }

func (k *KeywordValue) CopyTerm() Term {
	return &KeywordValue{termBase: termBase{Base: k.copyBase()}, Keyword: k.Keyword}
}

// NumericalValue is a number with an optional unit ("10px", "-.5em", "50%").
// Number keeps the source spelling, sign included.
type NumericalValue struct {
	termBase
	Number string
	Unit   string
}

func NewNumericalValue(line, column int, number, unit string) *NumericalValue {
	return &NumericalValue{termBase: newTermBase(line, column), Number: number, Unit: unit}
}

func (*NumericalValue) Kind() Kind { return KindNumericalValue }

func (n *NumericalValue) CopyTerm() Term {
	return &NumericalValue{termBase: termBase{Base: n.copyBase()}, Number: n.Number, Unit: n.Unit}
}

// HexColorValue is "#rgb" or "#rrggbb"; Color has no '#'.
type HexColorValue struct {
	termBase
	Color string
}

func NewHexColorValue(line, column int, color string) *HexColorValue {
	return &HexColorValue{termBase: newTermBase(line, column), Color: strings.ToLower(color)}
}

func (*HexColorValue) Kind() Kind { return KindHexColorValue }

func (h *HexColorValue) CopyTerm() Term {
	return &HexColorValue{termBase: termBase{Base: h.copyBase()}, Color: h.Color}
}

// StringValue is a quoted string. Content is stored as written, escapes
// included, without the quotes.
type StringValue struct {
	termBase
	Quote   byte
	Content string
}

func NewStringValue(line, column int, quote byte, content string) *StringValue {
	return &StringValue{termBase: newTermBase(line, column), Quote: quote, Content: content}
}

func (*StringValue) Kind() Kind { return KindStringValue }

func (s *StringValue) CopyTerm() Term {
	return &StringValue{termBase: termBase{Base: s.copyBase()}, Quote: s.Quote, Content: s.Content}
}

// OperatorType is a separator between terms.
type OperatorType uint8

const (
	OperatorComma OperatorType = iota
	OperatorSlash
)

func (o OperatorType) Symbol() string {
	if o == OperatorSlash {
		return "/"
	}
	return ","
}

// OperatorValue separates terms; adjacent non-operator terms are separated
// by a space when written.
type OperatorValue struct {
	termBase
	Type OperatorType
}

func NewOperatorValue(line, column int, t OperatorType) *OperatorValue {
	return &OperatorValue{termBase: newTermBase(line, column), Type: t}
}

func (*OperatorValue) Kind() Kind { return KindOperator }

func (o *OperatorValue) CopyTerm() Term {
	return &OperatorValue{termBase: termBase{Base: o.copyBase()}, Type: o.Type}
}

// FunctionValue is "name(args)". Arguments stay raw until a function
// strategy refines them into a typed form (see URLFunctionValue).
type FunctionValue struct {
	Base
	Groupable[Term]
	refineState

	name  string
	args  RawSyntax
	typed Syntax
}

func NewFunctionValue(line, column int, name string, args RawSyntax, r Refiner) *FunctionValue {
	f := &FunctionValue{Base: NewBase(line, column), name: name, args: args}
	f.refiner = r
	return f
}

func (f *FunctionValue) Kind() Kind      { return KindFunctionValue }
func (f *FunctionValue) IsRefined() bool { return f.refined }

// Name is the function name as written, e.g. "linear-gradient" or
// "-webkit-linear-gradient".
func (f *FunctionValue) Name() string { return f.name }

// SetName renames the function, used when adding vendor prefixes.
func (f *FunctionValue) SetName(n string) { f.name = n }

// UnprefixedName strips a vendor prefix from Name, keeping its case.
func (f *FunctionValue) UnprefixedName() string {
	return f.name[len(ParsePropertyName(f.name).Prefix):]
}

func (f *FunctionValue) RawArgs() RawSyntax { return f.args }

// Refined is the typed form set by a strategy, or nil.
func (f *FunctionValue) Refined() Syntax { return f.typed }

// SetRefined is called by function strategies.
func (f *FunctionValue) SetRefined(n Syntax) { f.typed = n }

// Refine runs the function strategies once.
func (f *FunctionValue) Refine() error {
	return f.run(&f.Base, "refine function", func(r Refiner) (bool, error) {
		return r.RefineFunction(f)
	})
}

// Copy returns a detached copy sharing raw arguments and refiner. A refined
// URL form is copied too.
func (f *FunctionValue) Copy() *FunctionValue {
	c := &FunctionValue{Base: f.copyBase(), name: f.name, args: f.args}
	c.refineState = f.refineState
	if t, ok := f.typed.(Term); ok {
		c.typed = t.CopyTerm()
	} else {
		c.typed = f.typed
	}
	return c
}

func (f *FunctionValue) CopyTerm() Term { return f.Copy() }

// URLFunctionValue is the refined form of url(...). Quote is 0 when the URL
// was unquoted.
type URLFunctionValue struct {
	termBase
	URL   string
	Quote byte
}

func NewURLFunctionValue(line, column int, url string, quote byte) *URLFunctionValue {
	return &URLFunctionValue{termBase: newTermBase(line, column), URL: url, Quote: quote}
}

func (*URLFunctionValue) Kind() Kind { return KindURLFunctionValue }

func (u *URLFunctionValue) CopyTerm() Term {
	return &URLFunctionValue{termBase: termBase{Base: u.copyBase()}, URL: u.URL, Quote: u.Quote}
}

// UnquotedIEFilter is a legacy "progid:" filter value. It is not valid
// CSS, so the text is kept and written as found.
type UnquotedIEFilter struct {
	termBase
	Content string
}

func NewUnquotedIEFilter(line, column int, content string) *UnquotedIEFilter {
	return &UnquotedIEFilter{termBase: newTermBase(line, column), Content: content}
}

func (*UnquotedIEFilter) Kind() Kind { return KindUnquotedIEFilter }

func (u *UnquotedIEFilter) Write(out Appender) error {
	out.Append(u.Content)
	return nil
}

func (u *UnquotedIEFilter) CopyTerm() Term {
	return &UnquotedIEFilter{termBase: termBase{Base: u.copyBase()}, Content: u.Content}
}
