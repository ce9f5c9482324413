package client

// ws_client.go follows the server's loan feed over a websocket.

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"libraryhub/internal/events"

	"github.com/gorilla/websocket"
)

// feedURL maps http(s)://host to ws(s)://host/api/loans/feed.
func (c *HTTPClient) feedURL() string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/api/loans/feed"
}

// WatchLoans calls onEvent for every loan event until ctx is cancelled or
// the server closes the feed.
func (c *HTTPClient) WatchLoans(ctx context.Context, onEvent func(events.LoanEvent)) error {
	header := http.Header{}
	if c.token != "" {
		header.Add("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.feedURL(), header)
	if err != nil {
		if resp != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// unblock ReadJSON when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	defer stop()

	for {
		var event events.LoanEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read loan event: %w", err)
		}
		onEvent(event)
	}
}
