package peer

import (
	"log/slog"
	"sync"

	"github.com/inkfield/inkfield/internal/model"
)

// Channel delivers game events to connected peers. Implementations must be
// safe for concurrent use; Publish must never block game logic.
type Channel interface {
	Publish(event model.Event)
}

// subscriberBuffer is the per-subscriber event backlog. A subscriber that
// falls further behind than this starts losing events.
const subscriberBuffer = 64

type subscriber struct {
	sessionID model.GameSessionID
	events    chan model.Event
}

// Hub fans events out to per-session subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[model.GameSessionID]map[*subscriber]struct{}
	closed      bool
	logger      *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[model.GameSessionID]map[*subscriber]struct{}),
		logger:      logger.With(slog.String("component", "peer")),
	}
}

// Subscribe registers a listener for a session's events. The returned cancel
// function unregisters the listener and closes the channel; it is safe to
// call more than once.
func (h *Hub) Subscribe(sessionID model.GameSessionID) (<-chan model.Event, func()) {
	sub := &subscriber{
		sessionID: sessionID,
		events:    make(chan model.Event, subscriberBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.events)
		return sub.events, func() {}
	}
	subs, ok := h.subscribers[sessionID]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.subscribers[sessionID] = subs
	}
	subs[sub] = struct{}{}
	count := len(subs)
	h.mu.Unlock()

	h.logger.Info("peer subscribed",
		slog.String("session_id", string(sessionID)),
		slog.Int("total_subscribers", count))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.unsubscribe(sub)
		})
	}
	return sub.events, cancel
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	if subs, ok := h.subscribers[sub.sessionID]; ok {
		if _, present := subs[sub]; present {
			delete(subs, sub)
			close(sub.events)
			if len(subs) == 0 {
				delete(h.subscribers, sub.sessionID)
			}
		}
	}
	h.mu.Unlock()
}

// Publish delivers an event to every subscriber of its session. Subscribers
// with full buffers have the event dropped rather than blocking the caller.
func (h *Hub) Publish(event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	dropped := 0
	for sub := range h.subscribers[event.SessionID] {
		select {
		case sub.events <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("peer event dropped - subscriber buffer full",
			slog.String("session_id", string(event.SessionID)),
			slog.String("event_type", string(event.Type)),
			slog.Int("dropped", dropped))
	}
}

// SubscriberCount returns the number of listeners for a session
func (h *Hub) SubscriberCount(sessionID model.GameSessionID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[sessionID])
}

// Close shuts down the hub and closes all subscriber channels
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	count := 0
	for _, subs := range h.subscribers {
		for sub := range subs {
			close(sub.events)
			count++
		}
	}
	h.subscribers = make(map[model.GameSessionID]map[*subscriber]struct{})
	h.logger.Info("peer hub closed", slog.Int("disconnected_subscribers", count))
}

var _ Channel = (*Hub)(nil)
