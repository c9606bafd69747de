package ast

import (
	"sync/atomic"

	"stylekit/internal/diag"
)

var lastID atomic.Uint64

// Syntax is implemented by every node of the tree.
type Syntax interface {
	Kind() Kind
	ID() uint64
	Line() int
	Column() int
	Status() Status
	SetStatus(s Status) error
	Comments() []string
	AddComments(c ...string)
	OrphanedComments() []string
	AddOrphanedComments(c ...string)
	// IsRefined reports whether the node already carries structure.
	IsRefined() bool
}

// Refinable is a node that holds raw syntax and can be refined on demand.
type Refinable interface {
	Syntax
	Refine() error
}

// Broadcaster announces nodes to listeners. The broadcast package provides
// the implementations; the interface lives here so collections can hold one.
type Broadcaster interface {
	Broadcast(n Syntax)
}

// Refiner turns raw syntax into structure. A node keeps the Refiner it was
// parsed with and calls back into it from Refine. A false result with a nil
// error means no strategy applied and the node stays pass-through.
type Refiner interface {
	RefineSelector(s *Selector) (bool, error)
	RefineDeclaration(d *Declaration) (bool, error)
	RefineFunction(f *FunctionValue) (bool, error)
	RefineAtRule(a *AtRule) (bool, error)
}

// refineState is the bookkeeping shared by refinable nodes.
type refineState struct {
	refiner Refiner
	done    bool
	refined bool
}

func (r *refineState) Refiner() Refiner { return r.refiner }

// run calls fn once and records the outcome on b.
func (r *refineState) run(b *Base, op string, fn func(Refiner) (bool, error)) error {
	if r.done {
		return nil
	}
	if r.refiner == nil {
		return noRefiner(op)
	}
	ok, err := fn(r.refiner)
	if err != nil {
		return err
	}
	r.done = true
	r.refined = ok
	if ok {
		b.Advance(StatusRefined)
	} else {
		b.Advance(StatusPassThrough)
	}
	return nil
}

// markRefined is used by constructors that build structure directly. The
// status is left alone so the node is still announced when attached.
func (r *refineState) markRefined() {
	r.done, r.refined = true, true
}

// RawSyntax is an unparsed slice of the stylesheet together with the
// position it started at.
type RawSyntax struct {
	Line    int
	Column  int
	Content string
}

// IsEmpty reports whether the raw content is blank.
func (r RawSyntax) IsEmpty() bool {
	for i := 0; i < len(r.Content); i++ {
		switch r.Content[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}

// Base carries the identity shared by all nodes. Custom nodes embed it
// through NewBase.
type Base struct {
	id       uint64
	line     int
	column   int
	status   Status
	comments []string
	orphaned []string
}

// NewBase allocates a fresh identity at the given position.
func NewBase(line, column int) Base {
	return Base{id: lastID.Add(1), line: line, column: column}
}

func (b *Base) ID() uint64     { return b.id }
func (b *Base) Line() int      { return b.line }
func (b *Base) Column() int    { return b.column }
func (b *Base) Status() Status { return b.status }

// Advance moves the status forward. Regressions and terminal-to-terminal
// moves are refused and leave the status unchanged.
func (b *Base) Advance(next Status) bool {
	if !b.status.CanAdvance(next) {
		return false
	}
	b.status = next
	return true
}

// SetStatus is Advance that reports a refused move as a state error.
// Setting the current status again is a no-op.
func (b *Base) SetStatus(next Status) error {
	if next == b.status {
		return nil
	}
	if !b.Advance(next) {
		return diag.NewStateError(diag.StaStatusRegression, "set status "+b.status.String()+" -> "+next.String())
	}
	return nil
}

func (b *Base) Comments() []string { return b.comments }

func (b *Base) AddComments(c ...string) {
	b.comments = append(b.comments, c...)
}

// OrphanedComments are comments that had no following node to attach to,
// e.g. a comment right before a closing brace.
func (b *Base) OrphanedComments() []string { return b.orphaned }

func (b *Base) AddOrphanedComments(c ...string) {
	b.orphaned = append(b.orphaned, c...)
}

// copyBase gives a copy a fresh identity but keeps position and comments.
func (b *Base) copyBase() Base {
	nb := NewBase(b.line, b.column)
	nb.comments = append([]string(nil), b.comments...)
	nb.orphaned = append([]string(nil), b.orphaned...)
	return nb
}

func noRefiner(op string) error {
	return diag.NewStateError(diag.StaNoRefiner, op)
}
