// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/binding.go
// Summary: Binds a scheduler to a router, classifying signal channels.

package pace

import "sync"

// SignalClass says what a signal channel means to the scheduler.
type SignalClass int

const (
	// SignalIgnore drops the event.
	SignalIgnore SignalClass = iota
	// SignalActivity routes to NotifyActivity.
	SignalActivity
	// SignalQuiescence routes to NotifyQuiescence.
	SignalQuiescence
	// SignalReset routes straight to ResetToFast, bypassing the activity
	// short-circuit.
	SignalReset
)

// SignalMap classifies event channels. Channels absent from the map are
// ignored.
type SignalMap map[EventType]SignalClass

// DefaultSignalMap wires every interaction channel plus window refocus to the
// activity path, window blur to quiescence, and the reload-reset channel to a
// hard reset.
func DefaultSignalMap() SignalMap {
	return SignalMap{
		EventPointerMove:    SignalActivity,
		EventPointerPress:   SignalActivity,
		EventPointerRelease: SignalActivity,
		EventWheel:          SignalActivity,
		EventKeyPress:       SignalActivity,
		EventTouchStart:     SignalActivity,
		EventTouchMove:      SignalActivity,
		EventFocusGained:    SignalActivity,
		EventFocusLost:      SignalQuiescence,
		EventReloadReset:    SignalReset,
	}
}

// SignalBinding subscribes a scheduler to a router as a single listener and
// maps incoming channels onto the scheduler's signal operations. Detach is
// the unsubscribe-all for the binding's whole subscription set.
type SignalBinding struct {
	router     Router
	target     SignalTarget
	signals    SignalMap
	detachOnce sync.Once
}

// BindSignals subscribes target to router. A nil signals map means
// DefaultSignalMap.
func BindSignals(router Router, target SignalTarget, signals SignalMap) *SignalBinding {
	if signals == nil {
		signals = DefaultSignalMap()
	}
	b := &SignalBinding{
		router:  router,
		target:  target,
		signals: signals,
	}
	router.Subscribe(b)
	return b
}

// OnEvent classifies the event's channel and drives the target.
func (b *SignalBinding) OnEvent(event Event) {
	switch b.signals[event.Type] {
	case SignalActivity:
		b.target.NotifyActivity()
	case SignalQuiescence:
		b.target.NotifyQuiescence()
	case SignalReset:
		b.target.ResetToFast()
	}
}

// Detach removes the binding's subscription. Safe to call more than once; no
// events reach the target afterwards.
func (b *SignalBinding) Detach() {
	b.detachOnce.Do(func() {
		b.router.Unsubscribe(b)
	})
}
