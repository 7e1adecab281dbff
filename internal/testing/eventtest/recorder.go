// Package eventtest provides an in-memory event.Publisher for tests.
package eventtest

import (
	"context"
	"sync"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/event"
)

// Recorder captures every published event in order
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PublishWithRetry records the event
func (r *Recorder) PublishWithRetry(_ context.Context, evt event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of type t
func (r *Recorder) OfType(t event.Type) []event.Event {
	var out []event.Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Notifications returns the recorded notification payloads
func (r *Recorder) Notifications() []domain.Notification {
	var out []domain.Notification
	for _, e := range r.OfType(event.Notification) {
		if n, ok := e.Payload.(domain.Notification); ok {
			out = append(out, n)
		}
	}
	return out
}

// Reset forgets everything recorded
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var _ event.Publisher = (*Recorder)(nil)
