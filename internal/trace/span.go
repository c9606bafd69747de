package trace

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span id.
func NextSpanID() uint64 { return globalSpans.Add(1) }

func gid() uint64 { return uint64(goid.Get()) } // #nosec G115 -- goroutine ids are positive

// wants reports whether t records events of scope at all.
func wants(t Tracer, scope Scope) bool {
	if t == nil || !t.Enabled() {
		return false
	}
	return t.Level() == LevelError || t.Level().ShouldEmit(scope)
}

// Span tracks one begin/end pair. A span from a disabled tracer has id 0
// and emits nothing.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	extra   map[string]string
}

// Begin emits a span start.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{started: time.Now()}
	if !wants(t, scope) {
		return s
	}
	s.tracer = t
	s.begin = Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		GID:      gid(),
		Name:     name,
	}
	ev := s.begin
	t.Emit(&ev)
	return s
}

// BeginCtx starts a span under the span stored in ctx and returns a context
// carrying the new one.
func BeginCtx(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if s.ID() == 0 {
		return ctx, s
	}
	return WithSpan(ctx, s), s
}

// End emits the span end and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	if s.tracer != nil {
		ev := s.begin
		ev.Time = s.started.Add(elapsed)
		ev.Kind = KindSpanEnd
		ev.Detail = detail
		ev.Extra = s.extra
		s.tracer.Emit(&ev)
	}
	return elapsed
}

// WithExtra adds a key/value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !wants(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      gid(),
		Name:     name,
		Detail:   detail,
	})
}
