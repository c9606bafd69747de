package diagfmt

import (
	"encoding/json"
	"io"

	"stylekit/internal/diag"
)

// DiagnosticJSON is the machine-readable form of one diagnostic.
type DiagnosticJSON struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// DiagnosticsOutput is the top-level JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// Collect converts diagnostics for one file.
func Collect(path string, items []diag.Diagnostic, opts JSONOpts) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		out = append(out, DiagnosticJSON{
			File:     opts.PathMode.Display(path),
			Line:     d.Line,
			Column:   d.Column,
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		})
	}
	return out
}

// FromError converts an error from package diag into a diagnostic.
func FromError(err error) diag.Diagnostic {
	line, col, _ := diag.Position(err)
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CodeOf(err),
		Message:  message(err),
		Line:     line,
		Column:   col,
	}
}

// JSON writes items as an indented document.
func JSON(w io.Writer, items []DiagnosticJSON, opts JSONOpts) error {
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(DiagnosticsOutput{Diagnostics: items, Count: len(items)})
}
