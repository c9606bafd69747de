package writer

import (
	"io"

	"stylekit/internal/ast"
)

type Options struct {
	Mode        Mode
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

// StyleWriter accumulates output. It implements ast.Appender for custom
// nodes.
type StyleWriter struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

func New(opt Options) *StyleWriter {
	return &StyleWriter{opt: opt.withDefaults()}
}

// Format writes n in mode and returns the text.
func Format(n ast.Syntax, mode Mode) (string, error) {
	w := New(Options{Mode: mode})
	if err := w.Write(n); err != nil {
		return "", err
	}
	return w.String(), nil
}

func (w *StyleWriter) Mode() Mode       { return w.opt.Mode }
func (w *StyleWriter) Compressed() bool { return w.opt.Mode == Compressed }
func (w *StyleWriter) Verbose() bool    { return w.opt.Mode == Verbose }

func (w *StyleWriter) Bytes() []byte  { return w.buf }
func (w *StyleWriter) String() string { return string(w.buf) }

// Reset discards the output, keeping options.
func (w *StyleWriter) Reset() {
	w.buf = w.buf[:0]
	w.indentLevel = 0
	w.atLineStart = false
}

// WriteTo copies the accumulated output to out.
func (w *StyleWriter) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.buf)
	return int64(n), err
}

func (w *StyleWriter) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// Append writes s as is.
func (w *StyleWriter) Append(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes one space unless compressed or already after whitespace.
func (w *StyleWriter) Space() {
	if w.Compressed() || len(w.buf) == 0 {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\n', '\t':
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline breaks the line in verbose mode and writes a space in inline
// mode.
func (w *StyleWriter) Newline() {
	switch w.opt.Mode {
	case Verbose:
		if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
			w.buf = append(w.buf, '\n')
		}
		w.atLineStart = true
	case Inline:
		w.Space()
	}
}

// blankLine separates top-level statements.
func (w *StyleWriter) blankLine() {
	switch w.opt.Mode {
	case Verbose:
		w.Newline()
		w.buf = append(w.buf, '\n')
		w.atLineStart = true
	case Inline:
		if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
			w.buf = append(w.buf, '\n')
		}
		w.atLineStart = true
	}
}

func (w *StyleWriter) indentPush() { w.indentLevel++ }

func (w *StyleWriter) indentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

var _ ast.Appender = (*StyleWriter)(nil)
