package ast

// Children returns the direct children of n in document order. Raw content
// that was never refined has no children.
func Children(n Syntax) []Syntax {
	var out []Syntax
	switch n := n.(type) {
	case *Stylesheet:
		out = appendAll(out, n.statements)
	case *StatementsBlock:
		out = appendAll(out, n.statements)
	case *FontFaceBlock:
		out = appendAll(out, n.descriptors)
	case *Rule:
		out = appendAll(out, n.selectors)
		out = appendAll(out, n.declarations)
	case *Selector:
		out = appendAll(out, n.parts)
	case *Declaration:
		if n.value != nil {
			out = append(out, n.value)
		}
	case *PropertyValue:
		out = appendAll(out, n.terms)
	case *FunctionValue:
		if n.typed != nil {
			out = append(out, n.typed)
		}
	case *AtRule:
		if n.expression != nil {
			out = append(out, n.expression)
		}
		if n.block != nil {
			out = append(out, n.block)
		}
	}
	return out
}

func appendAll[T Linked[T]](out []Syntax, c *Collection[T]) []Syntax {
	for it := range c.All() {
		out = append(out, it)
	}
	return out
}

// Walk visits root and its descendants depth first. Returning false from
// visit skips the children of that node. Children are collected before
// they are visited, so visit may detach or insert siblings.
func Walk(root Syntax, visit func(Syntax) bool) {
	if root == nil || !visit(root) {
		return
	}
	for _, c := range Children(root) {
		if g, ok := c.(interface{ IsDetached() bool }); ok && g.IsDetached() {
			continue
		}
		Walk(c, visit)
	}
}
