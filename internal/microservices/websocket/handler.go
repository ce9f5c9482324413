package websocket

import (
	"net/http"
	"slices"

	"libraryhub/internal/microservices/http-api/middleware"
	"libraryhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades GET /api/loans/feed to a websocket that streams loan events.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts browser origins from allowedOrigins ("*" allows any).
// Requests without an Origin header (CLI, curl) are always accepted.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowAll || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/feed", middleware.RequireScopes(auth.ScopeCatalogRead), h.Feed)
}

// Feed godoc
// @Summary      Stream loan events
// @Description  Websocket stream of borrowed/returned events as JSON text frames
// @Tags         loans
// @Success      101
// @Router       /api/loans/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		_ = c.Error(err)
		return
	}

	id := c.GetString("request_id")
	if id == "" {
		id = uuid.NewString()
	}
	client := NewClient(id, c.GetString("subject"), conn, h.hub)

	if !h.hub.join(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
