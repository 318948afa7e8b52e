package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/AmKilopa/KlpGIT"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	_ klpgit.Broadcaster = (*Hub)(nil)
	_ http.Handler       = (*Hub)(nil)
	_ io.Closer          = (*Hub)(nil)
)

// Hub timings.
const (
	DefaultPingInterval = 30 * time.Second
	writeTimeout        = 10 * time.Second
)

// Message is the frame written to live channel clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithPingInterval sets how often idle clients are pinged.
func WithPingInterval(d time.Duration) HubOption {
	return func(h *Hub) { h.pingInterval = d }
}

// Hub fans events out to connected websocket clients.
type Hub struct {
	logger       *slog.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	id   string
	conn *websocket.Conn
	done chan struct{}

	mu sync.Mutex // serializes data frames
}

// NewHub creates a hub. A nil logger discards log output.
func NewHub(logger *slog.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Hub{
		logger:       logger,
		pingInterval: DefaultPingInterval,
		clients:      make(map[*client]struct{}),
		// The zero CheckOrigin rejects handshakes whose Origin host differs
		// from the request host.
		upgrader: websocket.Upgrader{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, done: make(chan struct{})}
	h.add(c)
	h.logger.Debug("client connected", "client", c.id)

	go h.ping(c)

	// Incoming frames are ignored; reading drives pong and close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.logger.Debug("client disconnected", "client", c.id)
}

// Broadcast writes {"event", "data"} to every open client. Clients that fail
// the write are dropped.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("encode event", "event", event, "error", err)
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.write(payload); err != nil {
			h.logger.Debug("drop client", "client", c.id, "error", err)
			h.remove(c)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()
	for c := range clients {
		c.close()
	}
	return nil
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
	}
}

func (h *Hub) ping(c *client) {
	if h.pingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *client) close() {
	close(c.done)
	_ = c.conn.Close()
}
