// Package ws fans dice results out to every connected WebSocket observer.
package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// client is one connected observer. Writes are serialized per connection.
type client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) write(msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub tracks connected observers and broadcasts text messages to all of them.
// It is safe for concurrent use.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty Hub.
//
// Precondition: logger must be non-nil.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Len reports the number of connected observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every observer. Delivery is best effort: an observer
// whose write fails is disconnected and dropped.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.send(c, msg)
	}
}

func (h *Hub) send(c *client, msg []byte) {
	if err := c.write(msg); err != nil {
		h.logger.Warn("broadcast write failed",
			zap.Stringer("client", c.id),
			zap.Error(err),
		)
		_ = c.conn.Close()
		h.remove(c)
	}
}

// CloseAll disconnects every observer.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	}
}

type envelope struct {
	Type string `json:"type"`
}

// pong returns the keepalive reply for msg, if msg is a keepalive. Both the
// bare "ping" text and the JSON form {"type":"ping"} are recognized.
func pong(msg []byte) ([]byte, bool) {
	text := strings.TrimSpace(string(msg))
	if text == "ping" {
		return []byte("pong"), true
	}
	var env envelope
	if json.Unmarshal(msg, &env) == nil && env.Type == "ping" {
		return []byte(`{"type":"pong"}`), true
	}
	return nil, false
}

// Handler returns the HTTP handler that upgrades observers onto the hub.
// Keepalive pings are answered to the sender only; any other message is
// rebroadcast to every observer.
func (h *Hub) Handler() http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(_ *http.Request) bool { return true },
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		c := &client{id: uuid.New(), conn: conn}
		h.add(c)
		h.logger.Debug("observer connected",
			zap.Stringer("client", c.id),
			zap.String("remote", r.RemoteAddr),
		)
		defer func() {
			h.remove(c)
			_ = conn.Close()
			h.logger.Debug("observer disconnected", zap.Stringer("client", c.id))
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if reply, ok := pong(msg); ok {
				h.send(c, reply)
				continue
			}
			h.Broadcast(msg)
		}
	}
}
