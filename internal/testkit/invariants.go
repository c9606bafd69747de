// Package testkit holds tree checks shared by tests across packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stylekit/internal/ast"
	"stylekit/internal/source"
)

// CheckTreeInvariants runs a minimal set of invariants on a processed
// stylesheet:
// 1) every collection member is attached to the collection that holds it
// 2) node identities are unique
// 3) every position points inside sf (when sf is given)
func CheckTreeInvariants(sheet *ast.Stylesheet, sf *source.File) error {
	if sheet == nil {
		return fmt.Errorf("nil stylesheet")
	}
	seen := make(map[uint64]ast.Kind)
	var firstErr error
	fail := func(err error) bool {
		if firstErr == nil {
			firstErr = err
		}
		return false
	}
	ast.Walk(sheet, func(n ast.Syntax) bool {
		if k, dup := seen[n.ID()]; dup {
			return fail(fmt.Errorf("%s and %s share id %d", k, n.Kind(), n.ID()))
		}
		seen[n.ID()] = n.Kind()
		if err := checkOwnership(n); err != nil {
			return fail(err)
		}
		if sf != nil && n != ast.Syntax(sheet) {
			if err := checkPosition(n, sf); err != nil {
				return fail(err)
			}
		}
		return true
	})
	return firstErr
}

func checkOwnership(n ast.Syntax) error {
	switch n := n.(type) {
	case *ast.Stylesheet:
		return checkCollection(n, n.Statements())
	case *ast.StatementsBlock:
		return checkCollection(n, n.Statements())
	case *ast.FontFaceBlock:
		return checkCollection(n, n.Descriptors())
	case *ast.Rule:
		if err := checkCollection(n, n.Selectors()); err != nil {
			return err
		}
		return checkCollection(n, n.Declarations())
	case *ast.Selector:
		return checkCollection(n, n.Parts())
	case *ast.PropertyValue:
		return checkCollection(n, n.Terms())
	}
	return nil
}

func checkCollection[T ast.Linked[T]](owner ast.Syntax, c *ast.Collection[T]) error {
	if c.Owner() != owner {
		return fmt.Errorf("%s collection owned by %v", owner.Kind(), c.Owner())
	}
	items := c.Slice()
	if len(items) != c.Len() {
		return fmt.Errorf("%s collection has %d linked items, Len reports %d", owner.Kind(), len(items), c.Len())
	}
	for _, it := range items {
		g, err := it.Links().Group()
		if err != nil {
			return fmt.Errorf("%s %d:%d inside %s: %w", it.Kind(), it.Line(), it.Column(), owner.Kind(), err)
		}
		if g.Owner() != owner {
			return fmt.Errorf("%s %d:%d reports a different owner than %s", it.Kind(), it.Line(), it.Column(), owner.Kind())
		}
	}
	return nil
}

func checkPosition(n ast.Syntax, sf *source.File) error {
	if n.Line() < 1 || n.Column() < 1 {
		return fmt.Errorf("%s has position %d:%d", n.Kind(), n.Line(), n.Column())
	}
	line, err := safecast.Conv[uint32](n.Line())
	if err != nil {
		return fmt.Errorf("line overflow: %w", err)
	}
	lines := sf.LineCount()
	if n.Line() > lines {
		return fmt.Errorf("%s at line %d, file has %d", n.Kind(), n.Line(), lines)
	}
	if width := len(sf.GetLine(line)); n.Column() > width+1 {
		return fmt.Errorf("%s at %d:%d, line is %d bytes", n.Kind(), n.Line(), n.Column(), width)
	}
	return nil
}
