package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
)

const broadcastBufferSize = 64

// Hub keeps the set of connected displays and fans messages out to them.
// Messages carry full state, so a display that falls behind is dropped
// rather than waited for.
type Hub struct {
	clients   map[*Client]struct{}
	clientsMu sync.RWMutex

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	doneOnce   sync.Once

	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewHub creates a Hub. Call Run to start it.
func NewHub(logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    recorder,
		now:        time.Now,
	}
}

// Run processes registrations and broadcasts until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	logging.Info(h.logger, "broadcast hub started")
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

// Register adds a client. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues payload for every display. When the queue is full the
// oldest queued message is evicted so the latest view always goes out.
func (h *Hub) Publish(msgType string, payload any) {
	msg := h.NewMessage(msgType, payload)
	for {
		select {
		case h.broadcast <- msg:
			return
		case <-h.done:
			return
		default:
		}

		select {
		case <-h.broadcast:
			logging.Debug(h.logger, "broadcast queue full; dropped oldest message")
		default:
		}
	}
}

// ClientCount returns the number of connected displays.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.clientsMu.Unlock()

	h.metrics.RecordClientDelta(1)
	logging.Info(h.logger, "display connected",
		slog.String(logging.FieldClientID, c.ID),
		slog.Int(logging.FieldClients, total),
	)
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.clientsMu.Unlock()

	if ok {
		h.metrics.RecordClientDelta(-1)
		logging.Info(h.logger, "display disconnected",
			slog.String(logging.FieldClientID, c.ID),
			slog.Int(logging.FieldClients, total),
		)
	}
}

func (h *Hub) fanOut(msg Message) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(msg) {
			logging.Warn(h.logger, "display too slow; disconnecting", slog.String(logging.FieldClientID, c.ID))
			h.unregisterClient(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.doneOnce.Do(func() { close(h.done) })

	h.clientsMu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.clientsMu.Unlock()

	h.metrics.RecordClientDelta(-n)
	logging.Info(h.logger, "broadcast hub stopped")
}

// Attach registers an upgraded connection as a new display and starts its
// pumps. initial, when non-nil, is the first message the display receives.
func (h *Hub) Attach(ctx context.Context, conn *websocket.Conn, initial *Message) *Client {
	c := NewClient(uuid.NewString(), conn, h, h.logger)
	if initial != nil {
		c.TrySend(*initial)
	}
	h.Register(c)

	go c.WritePump(ctx)
	go c.ReadPump(ctx)
	return c
}

// NewMessage stamps a message with the hub clock.
func (h *Hub) NewMessage(msgType string, payload any) Message {
	return Message{Type: msgType, Payload: payload, Timestamp: h.now()}
}
