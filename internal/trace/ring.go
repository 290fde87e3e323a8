package trace

import "sync"

// RingTracer keeps the most recent events in memory. Tests and the lowering
// pass's failure paths read it back with Snapshot.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	start   int // index of the oldest event once buf is full
	limit   int
	dropped int
	level   Level
}

// NewRingTracer keeps up to capacity events; a non-positive capacity means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, 0, capacity), limit: capacity, level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.admits(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) < t.limit {
		t.buf = append(t.buf, stored)
		return
	}
	t.buf[t.start] = stored
	t.start = (t.start + 1) % t.limit
	t.dropped++
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.start:]...)
	return append(out, t.buf[:t.start]...)
}

// Failures returns the kept KindError events, oldest first.
func (t *RingTracer) Failures() []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindError {
			out = append(out, ev)
		}
	}
	return out
}

// Dropped counts events evicted to make room for newer ones.
func (t *RingTracer) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
