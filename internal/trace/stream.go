package trace

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// StreamTracer writes every accepted event to w as it arrives. Output to a
// file is buffered until Flush.
type StreamTracer struct {
	leveled
	mu     sync.Mutex
	dst    io.Writer
	buf    *bufio.Writer
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{leveled: leveled{level}, dst: w, format: format}
	if _, ok := w.(*os.File); ok && !isStdStream(w) {
		t.buf = bufio.NewWriter(w)
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи игнорируются: трассировка не должна ронять прогон
	_, _ = t.writer().Write(data)
}

func (t *StreamTracer) writer() io.Writer {
	if t.buf != nil {
		return t.buf
	}
	return t.dst
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf != nil {
		return t.buf.Flush()
	}
	return nil
}

// Close flushes and closes the output unless it is a standard stream.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.dst.(io.Closer); ok && !isStdStream(t.dst) {
		return c.Close()
	}
	return nil
}

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}
