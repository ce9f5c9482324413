package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const ( // ping pong (2-way heartbeat) keeps idle feeds alive through proxies
	WriteWait      = 10 * time.Second    // max time to write a message to the peer
	PongWait       = 60 * time.Second    // no pong within this window = dead connection
	PingPeriod     = (PongWait * 9) / 10 // must be shorter than PongWait
	MaxMessageSize = 512                 // the feed is one-way, peers only send control frames
	sendBuffer     = 32
)

// Client is one subscriber of the loan feed.
type Client struct {
	ID      string // request id of the upgrade request
	Subject string // token subject, empty when auth is disabled
	conn    *websocket.Conn
	send    chan []byte
	hub     *Hub
}

func NewClient(id, subject string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:      id,
		Subject: subject,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		hub:     hub,
	}
}

// ReadPump drains control frames and notices when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("feed read error", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}

// WritePump writes queued events and pings. It exits when the hub closes
// the send channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
