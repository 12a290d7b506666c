// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pacetcell/pump.go
// Summary: Polls the terminal driver and broadcasts signal traffic.
//
// The pump owns the driver's PollEvent loop. Every event is classified and,
// when it maps to a signal channel, broadcast on the router; the raw event is
// then forwarded on Events() so the caller's drawing loop still sees
// everything (redraw interrupts, resizes, quit keys).

package pacetcell

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpace/pace"
)

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// Classify maps a tcell event onto a signal channel. ok is false for events
// that carry no signal traffic (interrupts, resizes, errors). Stateless, so
// pointer release detection is left to the pump, which tracks button state.
func Classify(ev tcell.Event) (pace.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return pace.Event{Type: pace.EventKeyPress, When: ev.When()}, true
	case *tcell.EventFocus:
		t := pace.EventFocusLost
		if ev.Focused {
			t = pace.EventFocusGained
		}
		return pace.Event{Type: t, When: ev.When()}, true
	case *tcell.EventMouse:
		if ev.Buttons()&wheelMask != 0 {
			return pace.Event{Type: pace.EventWheel, When: ev.When()}, true
		}
		if ev.Buttons() == tcell.ButtonNone {
			return pace.Event{Type: pace.EventPointerMove, When: ev.When()}, true
		}
		return pace.Event{Type: pace.EventPointerPress, When: ev.When()}, true
	}
	return pace.Event{}, false
}

// Pump translates driver events into signal broadcasts.
type Pump struct {
	driver SurfaceDriver
	router pace.Router
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once

	// button state for press/release classification, touched only by run
	buttons tcell.ButtonMask
}

// NewPump creates a pump for the given driver and router.
func NewPump(driver SurfaceDriver, router pace.Router) *Pump {
	return &Pump{
		driver: driver,
		router: router,
		events: make(chan tcell.Event, 10),
		quit:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (p *Pump) Start() {
	go p.run()
}

// Events delivers every polled driver event. The channel closes when the
// driver is finalized or the pump is stopped.
func (p *Pump) Events() <-chan tcell.Event {
	return p.events
}

// Stop ends the pump. The poll goroutine also exits on its own once the
// driver is finalized, so Stop is only needed for early teardown.
func (p *Pump) Stop() {
	p.once.Do(func() {
		close(p.quit)
	})
}

func (p *Pump) run() {
	defer close(p.events)
	for {
		ev := p.driver.PollEvent()
		if ev == nil {
			// Driver finalized.
			return
		}
		if sig, ok := p.classify(ev); ok {
			p.router.Broadcast(sig)
		}
		select {
		case p.events <- ev:
		case <-p.quit:
			return
		}
	}
}

// classify wraps Classify with button-state tracking so a mouse event that
// drops a held button reports a release instead of a move.
func (p *Pump) classify(ev tcell.Event) (pace.Event, bool) {
	m, ok := ev.(*tcell.EventMouse)
	if !ok {
		return Classify(ev)
	}
	if m.Buttons()&wheelMask != 0 {
		return pace.Event{Type: pace.EventWheel, When: m.When()}, true
	}
	pressed := m.Buttons() &^ wheelMask
	prev := p.buttons
	p.buttons = pressed
	switch {
	case pressed&^prev != 0:
		return pace.Event{Type: pace.EventPointerPress, When: m.When()}, true
	case prev&^pressed != 0:
		return pace.Event{Type: pace.EventPointerRelease, When: m.When()}, true
	default:
		return pace.Event{Type: pace.EventPointerMove, When: m.When()}, true
	}
}
