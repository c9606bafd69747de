package writer

import (
	"fmt"
	"strings"

	"stylekit/internal/ast"
)

// Write appends n and its attached descendants. A detached statement,
// selector, declaration or term writes nothing.
func (w *StyleWriter) Write(n ast.Syntax) error {
	if detached(n) {
		return nil
	}
	return w.node(n, 0)
}

func detached(n ast.Syntax) bool {
	g, ok := n.(interface{ IsDetached() bool })
	return ok && g.IsDetached()
}

func (w *StyleWriter) node(n ast.Syntax, depth int) error {
	switch n := n.(type) {
	case *ast.Stylesheet:
		return w.statements(n.Statements(), n, depth)
	case *ast.StatementsBlock:
		return w.statements(n.Statements(), n, depth)
	case *ast.Rule:
		return w.rule(n)
	case *ast.FontFaceBlock:
		return w.descriptors(n)
	case *ast.AtRule:
		return w.atRule(n, depth)
	case *ast.Selector:
		w.selector(n)
	case *ast.Declaration:
		return w.declaration(n)
	case *ast.PropertyValue:
		return w.value(n)
	case ast.SelectorPart:
		w.part(n)
	case ast.Term:
		return w.term(n)
	case ast.CustomWritable:
		return n.Write(w)
	default:
		return fmt.Errorf("writer: cannot write %s", n.Kind())
	}
	return nil
}

func (w *StyleWriter) comments(cs []string) {
	if w.Compressed() {
		return
	}
	for _, c := range cs {
		w.Append("/* " + c + " */")
		w.Newline()
	}
}

func (w *StyleWriter) statements(c *ast.Collection[ast.Statement], owner ast.Syntax, depth int) error {
	first := true
	for st := range c.All() {
		if !first {
			if depth == 0 {
				w.blankLine()
			} else {
				w.Newline()
			}
		}
		first = false
		w.comments(st.Comments())
		if err := w.node(st, depth); err != nil {
			return err
		}
	}
	if orphaned := owner.OrphanedComments(); len(orphaned) > 0 && !w.Compressed() {
		if !first {
			w.Newline()
		}
		w.comments(orphaned)
	}
	return nil
}

func (w *StyleWriter) rule(r *ast.Rule) error {
	sep := ","
	if !w.Compressed() {
		sep = ", "
	}
	first := true
	for s := range r.Selectors().All() {
		if !first {
			w.Append(sep)
		}
		first = false
		w.selector(s)
	}
	w.Space()
	w.Append("{")
	w.Newline()
	w.indentPush()
	if err := w.declarations(r.Declarations()); err != nil {
		return err
	}
	w.comments(r.OrphanedComments())
	w.indentPop()
	w.Append("}")
	return nil
}

// descriptors writes the body of an @font-face block; the at-rule writes
// the braces.
func (w *StyleWriter) descriptors(b *ast.FontFaceBlock) error {
	w.Newline()
	w.indentPush()
	if err := w.declarations(b.Descriptors()); err != nil {
		return err
	}
	w.comments(b.OrphanedComments())
	w.indentPop()
	return nil
}

func (w *StyleWriter) declarations(c *ast.Collection[*ast.Declaration]) error {
	first := true
	for d := range c.All() {
		if !first && w.Compressed() {
			w.Append(";")
		}
		first = false
		w.comments(d.Comments())
		if err := w.declaration(d); err != nil {
			return err
		}
		if !w.Compressed() {
			w.Append(";")
			w.Newline()
		}
	}
	return nil
}

func (w *StyleWriter) declaration(d *ast.Declaration) error {
	w.Append(d.PropertyName().String())
	w.Append(":")
	w.Space()
	if v := d.Value(); v != nil {
		return w.value(v)
	}
	w.Append(strings.TrimSpace(d.RawValue().Content))
	return nil
}

func (w *StyleWriter) value(v *ast.PropertyValue) error {
	var prev ast.Term
	for t := range v.Terms().All() {
		_, isOp := t.(*ast.OperatorValue)
		_, prevOp := prev.(*ast.OperatorValue)
		if prev != nil && !isOp && !prevOp {
			w.Append(" ")
		}
		if err := w.term(t); err != nil {
			return err
		}
		prev = t
	}
	if v.IsImportant() {
		w.Space()
		w.Append("!important")
	}
	return nil
}

// term writes one value term. Terms the writer does not know must be
// CustomWritable.
func (w *StyleWriter) term(t ast.Term) error {
	switch t := t.(type) {
	case *ast.KeywordValue:
		w.Append(t.Keyword)
	case *ast.NumericalValue:
		w.Append(t.Number + t.Unit)
	case *ast.HexColorValue:
		w.Append("#" + t.Color)
	case *ast.StringValue:
		w.Append(quote(t.Quote, t.Content))
	case *ast.OperatorValue:
		w.Append(t.Type.Symbol())
		if t.Type == ast.OperatorComma {
			w.Space()
		}
	case *ast.FunctionValue:
		return w.function(t)
	case *ast.URLFunctionValue:
		w.url("url", t)
	case ast.CustomWritable:
		return t.Write(w)
	default:
		return fmt.Errorf("writer: cannot write term %s", t.Kind())
	}
	return nil
}

func (w *StyleWriter) function(f *ast.FunctionValue) error {
	switch typed := f.Refined().(type) {
	case *ast.URLFunctionValue:
		w.url(f.Name(), typed)
		return nil
	case ast.CustomWritable:
		return typed.Write(w)
	}
	w.Append(f.Name() + "(" + f.RawArgs().Content + ")")
	return nil
}

func (w *StyleWriter) url(name string, u *ast.URLFunctionValue) {
	if u.Quote == 0 {
		w.Append(name + "(" + u.URL + ")")
		return
	}
	w.Append(name + "(" + quote(u.Quote, u.URL) + ")")
}

func quote(q byte, s string) string {
	if q == 0 {
		q = '"'
	}
	return string(q) + s + string(q)
}

func (w *StyleWriter) selector(s *ast.Selector) {
	if s.Parts().IsEmpty() {
		w.Append(strings.TrimSpace(s.Raw().Content))
		return
	}
	for p := range s.Parts().All() {
		w.part(p)
	}
}

func (w *StyleWriter) part(p ast.SelectorPart) {
	switch p := p.(type) {
	case *ast.ClassSelector:
		w.Append("." + p.Name)
	case *ast.IDSelector:
		w.Append("#" + p.Name)
	case *ast.TypeSelector:
		w.Append(p.Name)
	case *ast.UniversalSelector:
		w.Append("*")
	case *ast.AttributeSelector:
		w.Append("[" + p.Name + p.Match + p.Value + "]")
	case *ast.PseudoClassSelector:
		w.Append(":" + p.Name)
		if p.HasArgs {
			w.Append("(" + p.Args + ")")
		}
	case *ast.PseudoElementSelector:
		if p.Legacy {
			w.Append(":" + p.Name)
		} else {
			w.Append("::" + p.Name)
		}
		if p.HasArgs {
			w.Append("(" + p.Args + ")")
		}
	case *ast.Combinator:
		if p.Type == ast.Descendant {
			w.Append(" ")
			return
		}
		w.Space()
		w.Append(p.Type.Symbol())
		w.Space()
	}
}

func (w *StyleWriter) atRule(a *ast.AtRule, depth int) error {
	w.Append("@" + a.Name())
	switch expr := a.Expression().(type) {
	case nil:
		if raw, ok := a.RawExpression(); ok && !raw.IsEmpty() {
			w.Append(" ")
			w.Append(strings.TrimSpace(raw.Content))
		}
	default:
		w.Append(" ")
		if err := w.node(expr, depth); err != nil {
			return err
		}
	}
	if !a.HasBlock() {
		w.Append(";")
		return nil
	}
	w.Space()
	w.Append("{")
	switch block := a.Block().(type) {
	case nil:
		raw, _ := a.RawBlock()
		w.Append(strings.TrimSpace(raw.Content))
	case *ast.StatementsBlock:
		w.Newline()
		w.indentPush()
		if err := w.statements(block.Statements(), block, depth+1); err != nil {
			return err
		}
		w.Newline()
		w.indentPop()
	default:
		if err := w.node(block, depth+1); err != nil {
			return err
		}
	}
	w.Append("}")
	return nil
}
