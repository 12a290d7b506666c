// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/dispatcher.go
// Summary: Signal channels and the dispatcher that fans events out to listeners.
// Notes: The channel set mirrors the interaction events a rendering surface
// typically exposes; which channels count as activity is configuration.

package pace

import (
	"sync"
	"time"
)

// EventType identifies a named signal channel.
type EventType int

const (
	// Pointer channels
	EventPointerMove EventType = iota
	EventPointerPress
	EventPointerRelease
	EventWheel
	// Keyboard channel
	EventKeyPress
	// Touch channels
	EventTouchStart
	EventTouchMove
	// Window foreground channels
	EventFocusGained
	EventFocusLost
	// Out-of-band reset request, e.g. from a live-reload layer after error
	// recovery. Bypasses the activity short-circuit.
	EventReloadReset
)

var eventTypeNames = map[EventType]string{
	EventPointerMove:    "pointer-move",
	EventPointerPress:   "pointer-press",
	EventPointerRelease: "pointer-release",
	EventWheel:          "wheel",
	EventKeyPress:       "key-press",
	EventTouchStart:     "touch-start",
	EventTouchMove:      "touch-move",
	EventFocusGained:    "focus-gained",
	EventFocusLost:      "focus-lost",
	EventReloadReset:    "reload-reset",
}

// String returns the configuration name of the channel.
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// EventTypeByName resolves a configured channel name to its EventType.
func EventTypeByName(name string) (EventType, bool) {
	for t, n := range eventTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Event is a signal passed through the system. It has a channel type, a
// timestamp, and can carry an arbitrary payload.
type Event struct {
	Type    EventType
	When    time.Time
	Payload interface{}
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	// OnEvent is the callback method for receiving events.
	OnEvent(event Event)
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		listeners: make([]Listener, 0),
	}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listeners {
		l.OnEvent(event)
	}
}
