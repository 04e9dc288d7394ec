package handlers

import (
	"net/http"

	"github.com/Ravindra230104/EduGather-server/internal/chat"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ChatHistory(c *gin.Context) {
	history, err := h.hub.History(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load chat history", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load chat history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// ChatWS upgrades the connection and hands it to the hub. The display name
// on outgoing messages is always the authenticated user's, never whatever
// the socket claims.
func (h *Handler) ChatWS(c *gin.Context) {
	profile := profileFrom(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	chat.ServeWS(h.hub, conn, profile.Name)
}
