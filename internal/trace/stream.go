package trace

import (
	"io"
	"sync"
)

// StreamTracer formats each event as it arrives and writes it to w. Units
// lower concurrently, so writes are serialised. The first write error is
// kept and returned by Close; lowering never fails because of tracing.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	err    error
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.admits(ev) {
		return
	}
	ev.Seq = NextSeq()
	line := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	if _, err := t.w.Write(line); err != nil {
		t.err = err
	}
}

// Err returns the first write error, if any.
func (t *StreamTracer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes, then closes w when it is an io.Closer.
func (t *StreamTracer) Close() error {
	ferr := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		if err := c.Close(); err != nil && ferr == nil {
			ferr = err
		}
	}
	return ferr
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
