// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/binding_test.go
// Summary: Tests for the signal binding.

package pace

import (
	"testing"
	"time"
)

type recordingTarget struct {
	activity   int
	quiescence int
	resets     int
}

func (r *recordingTarget) NotifyActivity()   { r.activity++ }
func (r *recordingTarget) NotifyQuiescence() { r.quiescence++ }
func (r *recordingTarget) ResetToFast()      { r.resets++ }

func TestSignalBinding_RoutesByClass(t *testing.T) {
	d := NewEventDispatcher()
	target := &recordingTarget{}
	binding := BindSignals(d, target, nil)
	defer binding.Detach()

	d.Broadcast(Event{Type: EventKeyPress, When: time.Now()})
	d.Broadcast(Event{Type: EventPointerMove})
	d.Broadcast(Event{Type: EventFocusGained})
	d.Broadcast(Event{Type: EventFocusLost})
	d.Broadcast(Event{Type: EventReloadReset})

	if target.activity != 3 {
		t.Errorf("expected 3 activity signals, got %d", target.activity)
	}
	if target.quiescence != 1 {
		t.Errorf("expected 1 quiescence signal, got %d", target.quiescence)
	}
	if target.resets != 1 {
		t.Errorf("expected 1 hard reset, got %d", target.resets)
	}
}

func TestSignalBinding_IgnoresUnmappedChannels(t *testing.T) {
	d := NewEventDispatcher()
	target := &recordingTarget{}
	binding := BindSignals(d, target, SignalMap{EventKeyPress: SignalActivity})
	defer binding.Detach()

	d.Broadcast(Event{Type: EventPointerMove})
	d.Broadcast(Event{Type: EventFocusLost})

	if target.activity != 0 || target.quiescence != 0 || target.resets != 0 {
		t.Errorf("expected no calls for unmapped channels, got %+v", target)
	}

	d.Broadcast(Event{Type: EventKeyPress})
	if target.activity != 1 {
		t.Errorf("expected 1 activity signal, got %d", target.activity)
	}
}

func TestSignalBinding_DetachStopsDelivery(t *testing.T) {
	d := NewEventDispatcher()
	target := &recordingTarget{}
	binding := BindSignals(d, target, nil)

	d.Broadcast(Event{Type: EventKeyPress})
	binding.Detach()
	binding.Detach() // repeated detach is safe
	d.Broadcast(Event{Type: EventKeyPress})
	d.Broadcast(Event{Type: EventReloadReset})

	if target.activity != 1 {
		t.Errorf("expected no delivery after detach, got %d activity signals", target.activity)
	}
	if target.resets != 0 {
		t.Errorf("expected no resets after detach, got %d", target.resets)
	}
}

// The binding plus a real scheduler: an external reload-reset must reach
// ResetToFast even while the scheduler is active at cursor 0, where the
// activity path would short-circuit.
func TestSignalBinding_ReloadResetBypassesShortCircuit(t *testing.T) {
	d := NewEventDispatcher()
	surface := newRecordingSurface()
	sched, err := NewScheduler(Config{BackoffTable: []time.Duration{500 * time.Millisecond, time.Second}}, surface)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sched.Close()
	sched.Start()

	binding := BindSignals(d, sched, nil)
	defer binding.Detach()

	d.Broadcast(Event{Type: EventKeyPress})
	if got := surface.redraws(); got != 0 {
		t.Fatalf("expected activity at full speed to be a no-op, got %d redraws", got)
	}

	d.Broadcast(Event{Type: EventReloadReset})
	if got := surface.redraws(); got != 1 {
		t.Errorf("expected reload-reset to force an immediate redraw, got %d", got)
	}
}
