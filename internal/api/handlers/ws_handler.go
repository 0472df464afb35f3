// backend-go/internal/api/handlers/ws_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/merchview/backend-go/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The console is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	hub *realtime.Hub
}

func NewWsHandler(hub *realtime.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Subscribe upgrades the connection and streams full snapshots of one
// collection: the current state immediately, then again on every change.
func (h *WsHandler) Subscribe(c *gin.Context) {
	collection := c.Param("collection")
	if !h.hub.Knows(collection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	if err := h.hub.Subscribe(c.Request.Context(), collection, conn); err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("websocket subscribe failed")
		conn.Close()
		return
	}

	// Block reading until the client goes away; subscribers only receive.
	go func() {
		defer func() {
			h.hub.Unsubscribe(collection, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
