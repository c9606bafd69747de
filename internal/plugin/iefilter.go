package plugin

import (
	"strings"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
)

// UnquotedIEFilter accepts legacy IE filters written without quotes, such
// as "filter: progid:DXImageTransform.Microsoft.gradient(...)". Without it
// refining such a declaration fails.
type UnquotedIEFilter struct{}

func (UnquotedIEFilter) Name() string { return "unquoted-ie-filter" }

func (UnquotedIEFilter) Register(_ *broadcast.Registry, r *parser.Refiner) error {
	return r.RegisterDeclaration("unquoted-ie-filter", refineIEFilter)
}

const progid = "progid:"

// refineIEFilter claims filter and -ms-filter declarations whose value
// starts with "progid:". The whole value becomes one verbatim term.
func refineIEFilter(d *ast.Declaration, r *parser.Refiner) (bool, error) {
	name := d.PropertyName()
	if name.Name != "filter" || (name.Prefix != "" && name.Prefix != "-ms-") {
		return false, nil
	}
	raw := d.RawValue()
	content := strings.TrimSpace(raw.Content)
	if len(content) < len(progid) || !strings.EqualFold(content[:len(progid)], progid) {
		return false, nil
	}
	filter := ast.NewUnquotedIEFilter(raw.Line, raw.Column, content)
	value := ast.NewPropertyValue(raw.Line, raw.Column, filter)
	d.SetPropertyValue(value)

	b := r.Broadcaster()
	b.Broadcast(value)
	b.Broadcast(filter)
	return true, nil
}
