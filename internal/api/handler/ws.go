package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"lecturehub/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeChatSocket upgrades a handshake on /ws/chat/:other_user_id into an
// admitted chat connection. The session token travels in the session_token
// query parameter. Rejections close the handshake with a bare status code
// and no body.
func (h *Handler) ServeChatSocket(c *gin.Context) {
	peerID, err := strconv.ParseUint(c.Param("other_user_id"), 10, 32)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	adm, err := h.Hub.Admit(c.Query("session_token"), uint(peerID))
	if err != nil {
		c.AbortWithStatus(rejectionStatus(err))
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, adm)

	// Join before the handshake is finalized: a peer's broadcast arriving
	// during the upgrade queues on the client instead of being missed.
	h.Hub.JoinRoom(client)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Hub.LeaveRoom(client)
		return
	}

	if err := client.Start(conn); err != nil {
		// History replay failed; the client cannot proceed without it.
		log.Printf("closing connection for user %d: %v", adm.User.ID, err)
		h.Hub.LeaveRoom(client)
		conn.Close()
	}
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, chathub.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, chathub.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, chathub.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
