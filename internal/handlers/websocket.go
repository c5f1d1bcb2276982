package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereayou/socialite/internal/middleware"
	ws "github.com/thereayou/socialite/internal/websocket"
	"github.com/thereayou/socialite/pkg/auth"
)

// WebSocketHandler управляет соединениями живой ленты
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleFeed подключает клиента к живой ленте
func (h *WebSocketHandler) HandleFeed(c *gin.Context) {
	identity, exists := c.Get(middleware.IdentityKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": ws.ErrUnauthorized.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, identity.(auth.Identity).ID)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
