package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/inkfield/inkfield/internal/api/response"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/peer"
)

// Time between keepalive pings
const pingPeriod = 30 * time.Second

// EventsHandler streams session events to peers over SSE
type EventsHandler struct {
	hub *peer.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *peer.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/games/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	events, cancel := h.hub.Subscribe(sessionIDVar(r))
	defer cancel()

	// Send initial connection event
	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				// Hub closed the subscription
				return
			}
			if err := writeSSEEvent(w, event); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// Send keepalive comment
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}

// writeSSEEvent formats one event as an SSE message with JSON data
func writeSSEEvent(w http.ResponseWriter, event model.Event) error {
	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte("event: " + string(event.Type) + "\n")); err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}
