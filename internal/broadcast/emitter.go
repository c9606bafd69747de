package broadcast

import (
	"stylekit/internal/ast"
	"stylekit/internal/trace"
)

// Emitter is the immediate broadcaster. It marks nodes broadcast and runs
// the preprocess handlers right away.
//
// Broadcast has no error return, so the first handler error is kept and
// every later broadcast is dropped. Callers check Err after parsing.
type Emitter struct {
	reg    *Registry
	tracer trace.Tracer
	extra  []ast.Broadcaster
	err    error
	count  int
}

// NewEmitter dispatches to reg; reg may be nil.
func NewEmitter(reg *Registry, tracer trace.Tracer) *Emitter {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Emitter{reg: reg, tracer: tracer}
}

// Listen adds a broadcaster that receives every node after the handlers.
func (e *Emitter) Listen(b ast.Broadcaster) { e.extra = append(e.extra, b) }

func (e *Emitter) Broadcast(n ast.Syntax) {
	if e.err != nil {
		return
	}
	if n.Status() == ast.StatusUnbroadcasted {
		if err := n.SetStatus(ast.StatusBroadcasted); err != nil {
			e.err = err
			return
		}
	}
	e.count++
	if e.tracer.Level() >= trace.LevelDebug {
		trace.Point(e.tracer, trace.ScopeNode, "broadcast:"+n.Kind().String(), "", 0)
	}
	if e.reg != nil {
		if err := e.reg.Dispatch(PhasePreprocess, n); err != nil {
			e.err = err
			return
		}
	}
	for _, b := range e.extra {
		b.Broadcast(n)
	}
}

// Err is the first handler error, if any.
func (e *Emitter) Err() error { return e.err }

// Count is the number of nodes broadcast so far.
func (e *Emitter) Count() int { return e.count }
