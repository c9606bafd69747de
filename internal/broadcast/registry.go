package broadcast

import (
	"fmt"

	"stylekit/internal/ast"
)

// Phase is a pass over the tree during which handlers run.
type Phase uint8

const (
	// PhasePreprocess handlers run as nodes are broadcast during parsing.
	PhasePreprocess Phase = iota
	// PhaseRework handlers run over the finished tree and may mutate it.
	PhaseRework
	// PhaseValidate handlers run last and report problems.
	PhaseValidate
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhasePreprocess:
		return "preprocess"
	case PhaseRework:
		return "rework"
	case PhaseValidate:
		return "validate"
	}
	return "unknown"
}

// Handler observes one node.
type Handler func(n ast.Syntax) error

type entry struct {
	kind  ast.Kind // KindInvalid matches every kind
	owner string
	fn    Handler
}

// Registry maps node kinds to ordered handler lists per phase. It is built
// once while plugins register and is read-only afterwards.
type Registry struct {
	phases *[phaseCount][]entry
	owner  string
}

func NewRegistry() *Registry {
	return &Registry{phases: new([phaseCount][]entry)}
}

// For returns a view sharing r's tables that tags registrations made
// through it with owner. The tag shows up in handler errors.
func (r *Registry) For(owner string) *Registry {
	return &Registry{owner: owner, phases: r.phases}
}

// On registers h for nodes of kind during phase.
func (r *Registry) On(phase Phase, kind ast.Kind, h Handler) {
	r.phases[phase] = append(r.phases[phase], entry{kind: kind, owner: r.owner, fn: h})
}

// OnAny registers h for every node during phase.
func (r *Registry) OnAny(phase Phase, h Handler) {
	r.On(phase, ast.KindInvalid, h)
}

// Len is the number of handlers registered for phase.
func (r *Registry) Len(phase Phase) int { return len(r.phases[phase]) }

// Dispatch runs the handlers matching n in registration order and stops at
// the first error.
func (r *Registry) Dispatch(phase Phase, n ast.Syntax) error {
	k := n.Kind()
	for _, e := range r.phases[phase] {
		if e.kind != ast.KindInvalid && e.kind != k {
			continue
		}
		if err := e.fn(n); err != nil {
			if e.owner != "" {
				return fmt.Errorf("%s: %s %s: %w", e.owner, phase, k, err)
			}
			return err
		}
	}
	return nil
}

// RunPhase walks root depth first and dispatches phase handlers to every
// attached node. Nodes inserted during the walk are visited if they are
// inserted into a collection that has not been reached yet.
func (r *Registry) RunPhase(phase Phase, root ast.Syntax) error {
	if len(r.phases[phase]) == 0 {
		return nil
	}
	var err error
	ast.Walk(root, func(n ast.Syntax) bool {
		if err != nil {
			return false
		}
		err = r.Dispatch(phase, n)
		return err == nil
	})
	return err
}

// Handle registers a typed handler. Nodes of kind that are not a T are
// skipped.
func Handle[T ast.Syntax](r *Registry, phase Phase, kind ast.Kind, fn func(T) error) {
	r.On(phase, kind, func(n ast.Syntax) error {
		if t, ok := n.(T); ok {
			return fn(t)
		}
		return nil
	})
}
