// Package notifications provides real-time delivery of feed events to
// connected viewers over websockets. The hub is purely in-process: events are
// published by the HTTP handlers after a successful mutation and fanned out to
// every subscriber.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"socialhub/internal/observability"

	"github.com/google/uuid"
)

// Max total feed subscribers.
const maxTotalConns = 10000

// Feed event types, one per mutating operation of the interaction engine.
const (
	EventPostCreated  = "post_created"
	EventPostLiked    = "post_liked"
	EventCommentAdded = "comment_added"
	EventPostShared   = "post_shared"
)

// Event is one feed event broadcast to all subscribers.
type Event struct {
	Type   string         `json:"type"`
	PostID int64          `json:"post_id,omitempty"`
	Actor  string         `json:"actor,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Hub fans feed events out to every connected subscriber.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register attaches a connection as a feed subscriber and returns its client.
// The caller runs the client's read and write pumps.
func (h *Hub) Register(conn Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, errors.New("hub is shut down")
	}
	if len(h.clients) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.clients[client.ID] = client
	observability.WebSocketConnections.Inc()
	return client, nil
}

// Unregister detaches a client. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.send)
	observability.WebSocketConnections.Dec()
}

// Publish broadcasts one event to every subscriber. Subscribers with a full
// buffer miss the event instead of stalling the publisher.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for _, client := range h.clients {
		client.TrySend(data)
	}
	observability.FeedEventsPublished.WithLabelValues(event.Type).Inc()
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every subscriber and refuses new registrations.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.send)
		observability.WebSocketConnections.Dec()
	}
	return nil
}
