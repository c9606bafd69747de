package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory for dumping after a failure.
type RingTracer struct {
	leveled
	mu     sync.RWMutex
	events []Event
	next   int // total events stored; the slot is next % len(events)
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{leveled: leveled{level}, events: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()
	t.mu.Lock()
	t.events[t.next%len(t.events)] = stored
	t.next++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := min(t.next, len(t.events))
	out := make([]Event, 0, n)
	for i := t.next - n; i < t.next; i++ {
		out = append(out, t.events[i%len(t.events)])
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// DumpRing writes the ring part of tr, if any, to w. Used by the CLI when a
// run fails.
func DumpRing(tr Tracer, w io.Writer, format Format) error {
	switch t := tr.(type) {
	case *RingTracer:
		return t.Dump(w, format)
	case *MultiTracer:
		for _, inner := range t.tracers {
			if err := DumpRing(inner, w, format); err != nil {
				return err
			}
		}
	}
	return nil
}
