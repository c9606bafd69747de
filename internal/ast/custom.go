package ast

// Appender is the output surface handed to custom nodes by the writer.
type Appender interface {
	Append(s string)
	// Space writes a single space unless output is compressed.
	Space()
	// Newline breaks the line in verbose output and writes a space in
	// inline output.
	Newline()
	Compressed() bool
	Verbose() bool
}

// CustomWritable is a node that knows how to write itself. Refinement
// strategies use it for at-rule expressions and function forms the writer
// does not know about.
type CustomWritable interface {
	Syntax
	Write(out Appender) error
}

// RawText is a custom node that writes fixed text. Strategies use it when
// they only normalise spacing of a raw expression.
type RawText struct {
	Base
	Text string
}

func NewRawText(line, column int, text string) *RawText {
	return &RawText{Base: NewBase(line, column), Text: text}
}

func (*RawText) Kind() Kind      { return KindCustom }
func (*RawText) IsRefined() bool { return true }

func (r *RawText) Write(out Appender) error {
	out.Append(r.Text)
	return nil
}
