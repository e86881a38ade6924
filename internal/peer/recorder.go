package peer

import (
	"sync"

	"github.com/inkfield/inkfield/internal/model"
)

// Recorder is a Channel that captures published events, for tests
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records the event
func (r *Recorder) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of all recorded events
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsOfType returns recorded events matching the given type
func (r *Recorder) EventsOfType(eventType model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var _ Channel = (*Recorder)(nil)
