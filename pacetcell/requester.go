// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pacetcell/requester.go
// Summary: Redraw-request capability backed by tcell interrupt events.

package pacetcell

import "github.com/gdamore/tcell/v2"

// redrawToken marks interrupt events posted by the requester so the drawing
// loop can tell them apart from other interrupts.
type redrawToken struct{}

// Requester implements pace.Surface by posting a wake-up interrupt to the
// driver's event queue. The drawing loop redraws when it sees the interrupt,
// which makes requests naturally coalescing: a full queue already guarantees
// the loop is about to wake.
type Requester struct {
	driver SurfaceDriver
}

// NewRequester returns a redraw requester for the given driver.
func NewRequester(driver SurfaceDriver) *Requester {
	return &Requester{driver: driver}
}

// RequestRedraw posts the wake-up. A post error means the queue is full or
// the screen is gone; either way there is nothing useful to do with it.
func (r *Requester) RequestRedraw() {
	_ = r.driver.PostEvent(tcell.NewEventInterrupt(redrawToken{}))
}

// IsRedrawRequest reports whether ev is a wake-up posted by a Requester.
func IsRedrawRequest(ev tcell.Event) bool {
	iv, ok := ev.(*tcell.EventInterrupt)
	if !ok {
		return false
	}
	_, ok = iv.Data().(redrawToken)
	return ok
}
