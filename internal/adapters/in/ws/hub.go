// Package ws streams delivery request events to connected clients over
// WebSocket. Each connection belongs to one authenticated actor and only
// receives the events that actor is entitled to see.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/domain/services"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many events a subscriber may lag behind before it is dropped.
	sendBuffer = 64
)

// subscriber owns one connection. Only its write loop writes to ws.
type subscriber struct {
	ws    *websocket.Conn
	actor actor.Actor
	send  chan request.Event
}

// Hub tracks subscribers and implements ports.EventPublisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
	filter      services.VisibilityFilter
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		filter: services.NewVisibilityFilter(),
		logger: logger.With("component", "EventStreamHub"),
	}
}

// Serve upgrades the request and blocks until the client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, a actor.Actor) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{ws: ws, actor: a, send: make(chan request.Event, sendBuffer)}
	h.add(sub)
	go h.writeLoop(sub)
	h.logger.InfoContext(r.Context(), "client subscribed", "actor_id", a.ID().String(), "role", a.Role().String())

	// Clients only listen; reading detects the close.
	for {
		if _, _, readErr := ws.ReadMessage(); readErr != nil {
			break
		}
	}

	h.remove(sub)
	h.logger.InfoContext(r.Context(), "client unsubscribed", "actor_id", a.ID().String())
	return nil
}

func (h *Hub) writeLoop(sub *subscriber) {
	for event := range sub.send {
		err := sub.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err == nil {
			err = sub.ws.WriteJSON(event)
		}
		if err != nil {
			h.logger.Warn("dropping subscriber after write failure",
				"actor_id", sub.actor.ID().String(), "error", err)
			h.remove(sub)
			for range sub.send {
			}
			return
		}
	}
}

// Publish queues event for every subscriber allowed to receive it and never
// waits on a connection. Subscribers whose queue is full are dropped.
func (h *Hub) Publish(ctx context.Context, event request.Event) error {
	var lagging []*subscriber

	h.mu.RLock()
	for sub := range h.subscribers {
		if !h.filter.CanReceive(sub.actor, event) {
			continue
		}
		select {
		case sub.send <- event:
		default:
			lagging = append(lagging, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range lagging {
		h.logger.WarnContext(ctx, "dropping subscriber that fell behind",
			"actor_id", sub.actor.ID().String())
		h.remove(sub)
	}

	return nil
}

// Subscribers reports the number of open connections.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		h.drop(sub)
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		h.drop(sub)
	}
}

// drop must be called with mu held.
func (h *Hub) drop(sub *subscriber) {
	delete(h.subscribers, sub)
	close(sub.send)
	_ = sub.ws.Close()
}
