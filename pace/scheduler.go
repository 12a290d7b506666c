// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/scheduler.go
// Summary: Adaptive redraw scheduler for demand-driven rendering surfaces.
//
// Architecture:
//
//	The scheduler owns a single self-rescheduling timer. Every fire requests
//	one redraw, steps a cursor one position through the backoff table, and
//	arms the next timer at the (possibly advanced) interval. With no activity
//	the cadence decays from the fastest entry down to the floor interval and
//	stays there. Any activity signal snaps the chain back to the fastest
//	interval and requests an immediate redraw; losing foreground status only
//	clears the activity flag and lets the natural slowdown continue.
//
// Usage:
//
//	sched, _ := pace.NewScheduler(pace.Config{}, surface)
//	sched.Start()
//	defer sched.Close()
//	// Wire signal sources via BindSignals, or call NotifyActivity directly.

package pace

import (
	"fmt"
	"sync"
	"time"
)

// Config holds scheduler configuration.
type Config struct {
	// BackoffTable is the ordered list of redraw intervals, fastest first.
	// Must be non-decreasing; the last entry is the idle floor.
	// Empty means DefaultBackoffTable.
	BackoffTable []time.Duration
}

// Metrics tracks scheduler activity for monitoring.
type Metrics struct {
	TimerFires        int64 // Redraws requested by the timer chain
	ImmediateRedraws  int64 // Redraws requested synchronously by ResetToFast
	Resets            int64 // ResetToFast invocations that took effect
	ActivitySignals   int64 // NotifyActivity calls (including no-ops)
	QuiescenceSignals int64 // NotifyQuiescence calls
}

// Scheduler decides how often a demand-driven surface is told to redraw.
type Scheduler struct {
	table   backoffTable
	surface Surface

	mu      sync.Mutex
	cursor  int
	active  bool
	started bool
	stopped bool
	timer   *time.Timer
	gen     uint64

	metrics Metrics
}

// NewScheduler creates a scheduler driving the given surface. The surface is
// not touched until Start (or ResetToFast) is called.
func NewScheduler(config Config, surface Surface) (*Scheduler, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface cannot be nil")
	}
	intervals := config.BackoffTable
	if len(intervals) == 0 {
		intervals = DefaultBackoffTable()
	}
	table, err := newBackoffTable(intervals)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		table:   table,
		surface: surface,
		active:  true,
	}, nil
}

// Start arms the first timer at the fastest interval. Calling it again, or
// after Close, is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.active = true
	s.armLocked(s.table.interval(s.cursor))
}

// fire runs when the pending timer elapses: one redraw request, one cursor
// step, and the next timer armed at the possibly advanced interval.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.metrics.TimerFires++
	s.cursor = s.table.advance(s.cursor)
	s.armLocked(s.table.interval(s.cursor))
	s.mu.Unlock()

	s.surface.RequestRedraw()
}

// ResetToFast snaps the chain back to the fastest interval and requests one
// redraw immediately, so the caller sees feedback without waiting for the
// first interval to elapse. Safe to call any number of times.
func (s *Scheduler) ResetToFast() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.cursor = 0
	s.active = true
	s.started = true
	s.metrics.Resets++
	s.metrics.ImmediateRedraws++
	s.armLocked(s.table.interval(0))
	s.mu.Unlock()

	s.surface.RequestRedraw()
}

// NotifyActivity is the fan-in for every configured activity source. A chain
// already running at full speed is left alone, existing timer included;
// anything else resumes fast rendering via ResetToFast. The cursor check
// matters: a surface that is foregrounded but has already slowed down still
// snaps back on interaction.
func (s *Scheduler) NotifyActivity() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.metrics.ActivitySignals++
	if s.active && s.cursor == 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.ResetToFast()
}

// NotifyQuiescence marks the surface as no longer observed. The timer chain
// keeps running; the natural slowdown continues uninterrupted.
func (s *Scheduler) NotifyQuiescence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.active = false
	s.metrics.QuiescenceSignals++
}

// Close cancels the pending timer. Signals and timer fires after Close are
// no-ops; closing twice is safe.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancelTimerLocked()
}

// Cursor returns the current position in the backoff table.
func (s *Scheduler) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Active reports whether the surface is currently considered foregrounded.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Interval returns the redraw interval at the current cursor.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.interval(s.cursor)
}

// Saturated reports whether the cadence has decayed to the floor interval.
func (s *Scheduler) Saturated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.saturated(s.cursor)
}

// Metrics returns a copy of current metrics.
func (s *Scheduler) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// String returns debug information.
func (s *Scheduler) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Scheduler{cursor=%d/%d, interval=%v, active=%t, fires=%d, resets=%d}",
		s.cursor, len(s.table)-1, s.table.interval(s.cursor), s.active,
		s.metrics.TimerFires, s.metrics.Resets)
}

// --- Internal Methods ---

// armLocked replaces the pending timer, keeping at most one outstanding
// callback. The generation counter makes the replacement reliable: a callback
// that had already left the runtime's timer queue when Stop ran sees a stale
// generation and gives up instead of racing the new chain.
// Must be called with s.mu held.
func (s *Scheduler) armLocked(d time.Duration) {
	s.cancelTimerLocked()
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(d, func() { s.fire(gen) })
}

// cancelTimerLocked stops any pending timer.
// Must be called with s.mu held.
func (s *Scheduler) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
