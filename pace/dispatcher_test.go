package pace

import (
	"testing"
	"time"
)

type recordingListener struct {
	events []Event
}

func (l *recordingListener) OnEvent(event Event) {
	l.events = append(l.events, event)
}

func TestEventDispatcher_SubscribeAndBroadcast(t *testing.T) {
	d := NewEventDispatcher()
	a := &recordingListener{}
	b := &recordingListener{}
	d.Subscribe(a)
	d.Subscribe(b)

	d.Broadcast(Event{Type: EventKeyPress, When: time.Now()})

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("expected both listeners to receive the event, got %d and %d", len(a.events), len(b.events))
	}
	if a.events[0].Type != EventKeyPress {
		t.Errorf("expected key-press, got %v", a.events[0].Type)
	}
}

func TestEventDispatcher_Unsubscribe(t *testing.T) {
	d := NewEventDispatcher()
	a := &recordingListener{}
	b := &recordingListener{}
	d.Subscribe(a)
	d.Subscribe(b)

	d.Unsubscribe(a)
	d.Broadcast(Event{Type: EventWheel})

	if len(a.events) != 0 {
		t.Errorf("expected unsubscribed listener to receive nothing, got %d", len(a.events))
	}
	if len(b.events) != 1 {
		t.Errorf("expected remaining listener to receive the event, got %d", len(b.events))
	}
}

func TestEventTypeByName(t *testing.T) {
	for _, name := range []string{
		"pointer-move", "pointer-press", "pointer-release", "wheel",
		"key-press", "touch-start", "touch-move",
		"focus-gained", "focus-lost", "reload-reset",
	} {
		et, ok := EventTypeByName(name)
		if !ok {
			t.Errorf("expected %q to resolve", name)
			continue
		}
		if et.String() != name {
			t.Errorf("expected round-trip for %q, got %q", name, et.String())
		}
	}

	if _, ok := EventTypeByName("no-such-channel"); ok {
		t.Error("expected unknown channel name to not resolve")
	}
}
