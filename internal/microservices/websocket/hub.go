package websocket

// Central hub fanning loan events out to every connected client.
// Each connection runs its own read and write goroutines; they talk to the
// hub only through channels.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"libraryhub/internal/events"
)

// ErrHubClosed is returned by Publish once the hub has stopped.
var ErrHubClosed = errors.New("loan feed closed")

type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	count      atomic.Int64
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		logger:     logger.With("component", "loan_feed"),
	}
}

// Run owns the client set until ctx is cancelled or Close is called.
func (h *Hub) Run(ctx context.Context) {
	defer h.disconnectAll()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return
		case <-h.done:
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("feed client connected", "client_id", c.ID, "clients", len(h.clients))

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow reader
					h.logger.Warn("feed client too slow, disconnecting", "client_id", c.ID)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
	h.logger.Debug("feed client disconnected", "client_id", c.ID, "clients", len(h.clients))
}

func (h *Hub) disconnectAll() {
	for c := range h.clients {
		h.drop(c)
	}
}

// Publish queues event for every connected client. It implements
// events.Publisher so the hub can sit next to the redis publisher.
func (h *Hub) Publish(ctx context.Context, event events.LoanEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode loan event: %w", err)
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops Run. Safe to call more than once.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// join hands c to the hub, failing if the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
