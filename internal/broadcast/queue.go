package broadcast

import "stylekit/internal/ast"

// Queue forwards to an inner broadcaster while open and buffers while
// paused.
type Queue struct {
	inner  ast.Broadcaster
	paused bool
	buf    []ast.Syntax
}

// NewQueue starts open.
func NewQueue(inner ast.Broadcaster) *Queue {
	return &Queue{inner: inner}
}

// NewPausedQueue starts paused.
func NewPausedQueue(inner ast.Broadcaster) *Queue {
	return &Queue{inner: inner, paused: true}
}

func (q *Queue) Broadcast(n ast.Syntax) {
	if q.paused {
		q.buf = append(q.buf, n)
		return
	}
	q.inner.Broadcast(n)
}

func (q *Queue) Pause()         { q.paused = true }
func (q *Queue) IsPaused() bool { return q.paused }

// Pending is the number of buffered nodes.
func (q *Queue) Pending() int { return len(q.buf) }

// Resume flushes the buffer in emission order, then reopens. Nodes
// broadcast by listeners during the flush are forwarded after the buffered
// ones.
func (q *Queue) Resume() {
	for len(q.buf) > 0 {
		n := q.buf[0]
		q.buf = q.buf[1:]
		q.inner.Broadcast(n)
	}
	q.buf = nil
	q.paused = false
}
