package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sauti/backend/internal/feed"
	"sauti/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The live feed is public, same as the dashboard it powers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and attaches the viewer to the live
// complaint feed.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &feed.Client{
		Hub:  h.Hub,
		Conn: conn,
		Send: make(chan models.ComplaintEvent, 64),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
