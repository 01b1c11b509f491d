// Package events provides the minimal event target the widgets dispatch
// submissions through. Events never propagate: only listeners registered on
// the dispatching target observe them.
package events

import (
	"sync"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

// Event type names emitted by the widgets.
const (
	TypeDataSubmit   = "data-submit"
	TypeActionSubmit = "action-submit"
)

// Event is a dispatched notification. Bubbles and Composed are carried for
// hosts that bridge events elsewhere; widgets always set both to false.
type Event struct {
	Type     string `json:"type"`
	Detail   any    `json:"detail"`
	Bubbles  bool   `json:"bubbles"`
	Composed bool   `json:"composed"`
}

// DataSubmit builds the form widget's submission event.
func DataSubmit(records []model.SubmissionRecord) Event {
	return Event{Type: TypeDataSubmit, Detail: records}
}

// ActionSubmit builds the table widget's add-record event.
func ActionSubmit(values map[string]string) Event {
	return Event{Type: TypeActionSubmit, Detail: values}
}

// Listener receives dispatched events.
type Listener func(Event)

type registration struct {
	id int
	fn Listener
}

// Target holds listeners keyed by event type. The zero value is ready to use.
type Target struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[string][]registration
}

// AddEventListener registers fn for eventType and returns a function that
// removes it again. Removing twice is harmless.
func (t *Target) AddEventListener(eventType string, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners == nil {
		t.listeners = make(map[string][]registration)
	}
	t.nextID++
	id := t.nextID
	t.listeners[eventType] = append(t.listeners[eventType], registration{id: id, fn: fn})
	return func() {
		t.removeListener(eventType, id)
	}
}

func (t *Target) removeListener(eventType string, id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	regs := t.listeners[eventType]
	for i, reg := range regs {
		if reg.id == id {
			t.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// ListenerCount reports how many listeners are registered for eventType.
func (t *Target) ListenerCount(eventType string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners[eventType])
}

// DispatchEvent delivers event synchronously to the listeners registered for
// its type, in registration order, and reports how many were invoked.
func (t *Target) DispatchEvent(event Event) int {
	t.mu.RLock()
	regs := append([]registration(nil), t.listeners[event.Type]...)
	t.mu.RUnlock()
	for _, reg := range regs {
		reg.fn(event)
	}
	return len(regs)
}
