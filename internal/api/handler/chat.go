package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lecturehub/backend/internal/api/middleware"
	"lecturehub/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// PreviousMessages returns the chat history with the other user, split by
// direction. The websocket history batch merges the same rows
// chronologically; this REST mirror keeps the sent/received split because
// existing clients depend on that shape.
func (h *Handler) PreviousMessages(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	otherID, err := strconv.ParseUint(c.Param("other_user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the other_user_id parameter is required"})
		return
	}
	if uint(otherID) == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender_id and recipient_id cannot be the same"})
		return
	}

	sent, err := h.Storage.GetSentMessages(user.ID, uint(otherID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	received, err := h.Storage.GetReceivedMessages(user.ID, uint(otherID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sent_messages":     sent,
		"received_messages": received,
	})
}

// MarkMessageRead marks a received message as read. Only the recipient may
// mark it, and marking twice is a no-op.
func (h *Handler) MarkMessageRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	msg, err := h.Storage.GetMessageByID(uint(id))
	if errors.Is(err, storage.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load message"})
		return
	}
	if msg.RecipientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the recipient can mark a message read"})
		return
	}

	if err := h.Storage.MarkMessageRead(uint(id), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark message read"})
		return
	}
	c.Status(http.StatusNoContent)
}
