package main

import (
	"sync"
	"time"

	"github.com/framegrace/texelpace/pace"
	"github.com/framegrace/texelpace/trace"
)

// tracedSurface forwards redraw requests and records each one. The cause is
// inferred from the scheduler's immediate-redraw counter: if it moved since
// the last request, this request came from a fast reset rather than the
// timer chain.
type tracedSurface struct {
	inner pace.Surface
	store *trace.Store

	mu            sync.Mutex
	sched         *pace.Scheduler
	lastImmediate int64
}

// attach gives the wrapper its scheduler once it exists; the scheduler needs
// the surface first, so this closes the cycle.
func (t *tracedSurface) attach(sched *pace.Scheduler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sched = sched
}

func (t *tracedSurface) RequestRedraw() {
	t.inner.RequestRedraw()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sched == nil {
		return
	}
	m := t.sched.Metrics()
	cause := trace.CauseTimer
	if m.ImmediateRedraws > t.lastImmediate {
		cause = trace.CauseReset
	}
	t.lastImmediate = m.ImmediateRedraws
	t.store.Record(trace.Entry{
		Timestamp: time.Now(),
		Cause:     cause,
		Cursor:    t.sched.Cursor(),
		Interval:  t.sched.Interval(),
	})
}
