package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"stylekit/internal/diag"
	"stylekit/internal/source"
)

type palette struct {
	path, errLabel, warnLabel, infoLabel, code, caret, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:      color.New(color.Bold),
		errLabel:  color.New(color.FgRed, color.Bold),
		warnLabel: color.New(color.FgYellow, color.Bold),
		infoLabel: color.New(color.FgCyan, color.Bold),
		code:      color.New(color.Faint),
		caret:     color.New(color.FgGreen, color.Bold),
		gutter:    color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.path, p.errLabel, p.warnLabel, p.infoLabel, p.code, p.caret, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) label(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errLabel
	case diag.SevWarning:
		return p.warnLabel
	}
	return p.infoLabel
}

// Pretty печатает все диагностики из bag. Для каждой:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с кареткой под колонкой.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		render(w, p, file, opts, d)
	}
}

// Error renders err. Errors from package diag with a position get a source
// excerpt; anything else is printed as one line.
func Error(w io.Writer, err error, file *source.File, opts PrettyOpts) {
	if err == nil {
		return
	}
	p := newPalette(opts.Color)
	line, col, ok := diag.Position(err)
	if !ok {
		path := ""
		switch {
		case file != nil:
			path = opts.PathMode.Display(file.Path) + ": "
		case opts.Name != "":
			path = opts.PathMode.Display(opts.Name) + ": "
		}
		fmt.Fprintf(w, "%s%s %s\n", p.path.Sprint(path), p.errLabel.Sprint("ERROR"), err.Error())
		return
	}
	render(w, p, file, opts, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CodeOf(err),
		Message:  message(err),
		Line:     line,
		Column:   col,
	})
}

// message drops the position prefix the error types put in Error().
func message(err error) string {
	var se *diag.SyntaxError
	if errors.As(err, &se) {
		return se.Message
	}
	var ve *diag.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func render(w io.Writer, p palette, file *source.File, opts PrettyOpts, d diag.Diagnostic) {
	path := opts.PathMode.Display(opts.Name)
	if file != nil {
		path = opts.PathMode.Display(file.Path)
	}
	fmt.Fprintf(w, "%s %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d:", path, d.Line, d.Column),
		p.label(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)
	if file == nil || d.Line <= 0 {
		return
	}
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	gutterWidth := len(fmt.Sprint(d.Line))
	first := max(d.Line-int(opts.Context), 1)
	for n := first; n <= d.Line; n++ {
		text := expandTabs(file.GetLine(uint32(n)), tab) // #nosec G115 -- n >= 1
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), text)
	}
	lineText := file.GetLine(uint32(d.Line)) // #nosec G115 -- d.Line >= 1
	pad := caretOffset(lineText, d.Column, tab)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint("^"))
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %d:%d: %s\n", p.infoLabel.Sprint("note:"), n.Line, n.Column, n.Msg)
	}
}

// caretOffset is the display width of the text before the 1-based byte
// column.
func caretOffset(line string, column, tab int) int {
	end := min(max(column-1, 0), len(line))
	return uniseg.StringWidth(expandTabs(line[:end], tab))
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	width := 0
	state := -1
	rest := s
	var cluster string
	for len(rest) > 0 {
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			n := tab - width%tab
			b.WriteString(strings.Repeat(" ", n))
			width += n
			continue
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String()
}
