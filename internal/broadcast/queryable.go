package broadcast

import "stylekit/internal/ast"

// Queryable records every node it sees and forwards it to inner (when not
// nil).
type Queryable struct {
	inner ast.Broadcaster
	seen  []ast.Syntax
}

func NewQueryable(inner ast.Broadcaster) *Queryable {
	return &Queryable{inner: inner}
}

func (q *Queryable) Broadcast(n ast.Syntax) {
	q.seen = append(q.seen, n)
	if q.inner != nil {
		q.inner.Broadcast(n)
	}
}

// All returns the recorded nodes in emission order.
func (q *Queryable) All() []ast.Syntax {
	return append([]ast.Syntax(nil), q.seen...)
}

// Find returns the first recorded node of kind.
func (q *Queryable) Find(kind ast.Kind) (ast.Syntax, bool) {
	for _, n := range q.seen {
		if n.Kind() == kind {
			return n, true
		}
	}
	return nil, false
}

// Filter returns every recorded node of kind in emission order.
func (q *Queryable) Filter(kind ast.Kind) []ast.Syntax {
	var out []ast.Syntax
	for _, n := range q.seen {
		if n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// Reset forgets recorded nodes.
func (q *Queryable) Reset() { q.seen = q.seen[:0] }

// FindAs returns the first recorded node whose dynamic type is T.
func FindAs[T ast.Syntax](q *Queryable) (T, bool) {
	for _, n := range q.seen {
		if t, ok := n.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// FilterAs returns every recorded node whose dynamic type is T.
func FilterAs[T ast.Syntax](q *Queryable) []T {
	var out []T
	for _, n := range q.seen {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
