package diag

type Note struct {
	Line   int
	Column int
	Msg    string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Line     int
	Column   int
	Notes    []Note
}

// Reporter: минимальный контракт получения диагностик от фаз.
type Reporter interface {
	Report(d Diagnostic)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// Warn is a shortcut for reporting a SevWarning diagnostic.
func Warn(r Reporter, code Code, line, column int, msg string) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{Severity: SevWarning, Code: code, Message: msg, Line: line, Column: column})
}
