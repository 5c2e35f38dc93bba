// Package dashboard is an endpoint-side, read-only status page: a small
// HTTP server that shows an operator which sessions have attached to the
// inspector endpoint and mirrors request/notification activity over a
// websocket as it happens. It observes the endpoint; it never drives it.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event is one line of activity pushed to every connected dashboard
// client: a request dispatched, a client attaching or detaching, a
// notification sent.
type Event struct {
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

const clientQueueDepth = 64

// Hub fans Events out to every connected websocket client, dropping the
// oldest queued event for a client that falls behind rather than
// blocking the endpoint goroutine that reported it.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[chan Event]struct{}

	recentMu sync.Mutex
	recent   []Event
}

const recentHistory = 50

// NewHub constructs a Hub. Pass the result to inspector.WithDashboard to
// have an Endpoint report activity to it.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[chan Event]struct{}),
	}
}

// Broadcast records ev and fans it out to every connected client.
func (h *Hub) Broadcast(ev Event) {
	h.recentMu.Lock()
	h.recent = append(h.recent, ev)
	if len(h.recent) > recentHistory {
		h.recent = h.recent[len(h.recent)-recentHistory:]
	}
	h.recentMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Recent returns the last recentHistory events, oldest first, for a
// newly-connected client to render before it starts receiving live ones.
func (h *Hub) Recent() []Event {
	h.recentMu.Lock()
	defer h.recentMu.Unlock()
	out := make([]Event, len(h.recent))
	copy(out, h.recent)
	return out
}

func (h *Hub) subscribe() chan Event {
	ch := make(chan Event, clientQueueDepth)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

// MarshalEvent is a small helper export so the websocket handler and
// tests encode events identically.
func MarshalEvent(ev Event) ([]byte, error) { return json.Marshal(ev) }
