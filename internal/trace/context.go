package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost span.
type ctxState struct {
	tracer Tracer
	span   uint64
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the Tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer { return stateOf(ctx).tracer }

// WithTracer attaches t to ctx. The current span is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// CurrentSpan returns the innermost span id stored in ctx, 0 if none.
func CurrentSpan(ctx context.Context) uint64 { return stateOf(ctx).span }

// WithSpan records s as the parent for spans started from the returned
// context.
func WithSpan(ctx context.Context, s *Span) context.Context {
	st := stateOf(ctx)
	st.span = s.ID()
	return context.WithValue(ctx, ctxKey{}, st)
}
