package chathub

import (
	"encoding/json"
	"fmt"
	"log"

	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"

	"github.com/google/uuid"
)

// Hub orchestrates the full lifecycle of chat connections: admission,
// history replay, the persist-then-broadcast receive path, and disconnect
// cleanup. One hub serves the whole process.
type Hub struct {
	registry *Registry
	storage  storage.Storage
	tokens   TokenVerifier

	// instanceID tags outgoing pub/sub envelopes so this instance can
	// recognize and skip its own payloads.
	instanceID string
}

func NewHub(s storage.Storage, tokens TokenVerifier) *Hub {
	return &Hub{
		registry:   NewRegistry(),
		storage:    s,
		tokens:     tokens,
		instanceID: uuid.New().String(),
	}
}

// Registry exposes the room registry, mainly for tests and diagnostics.
func (h *Hub) Registry() *Registry { return h.registry }

// Admit validates a connection attempt and binds it to a room. See Gate
// for the admission sequence.
func (h *Hub) Admit(token string, peerID uint) (*Admission, error) {
	return NewGate(h.storage, h.tokens).Admit(token, peerID)
}

// JoinRoom enters the client into its room's broadcast group. This must
// complete before the websocket handshake is finalized, so a concurrently
// admitted peer's broadcast cannot fall between accept and join.
func (h *Hub) JoinRoom(c Client) {
	h.registry.Join(c.Room(), c)
	if err := h.storage.AddOnlineUser(c.Room(), c.UserID()); err != nil {
		log.Printf("failed to record presence for user %d: %v", c.UserID(), err)
	}
}

// LeaveRoom removes the client from its room and releases its outbound
// channel. Safe to call exactly once per admitted client.
func (h *Hub) LeaveRoom(c Client) {
	h.registry.Leave(c.Room(), c)
	if err := h.storage.RemoveOnlineUser(c.Room(), c.UserID()); err != nil {
		log.Printf("failed to clear presence for user %d: %v", c.UserID(), err)
	}
	c.Close()
}

// History builds the single ordered batch replayed to a freshly admitted
// socket: every message between the pair, ascending by timestamp, encoded
// as one JSON array frame.
func (h *Hub) History(userID, peerID uint) ([]byte, error) {
	messages, err := h.storage.GetConversation(userID, peerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	entries := make([]models.HistoryEntry, 0, len(messages))
	for i := range messages {
		entries = append(entries, messages[i].HistoryEntry())
	}
	return json.Marshal(entries)
}

// HandleInbound persists an inbound message and fans it out to the room.
// Persist and fan-out run under the room lock, so the broadcast order is
// the persistence order. On a persistence failure nothing is broadcast and
// ErrPersistence is returned for the origin connection to report.
func (h *Hub) HandleInbound(c Client, text string) error {
	if text == "" {
		return ErrMalformedFrame
	}

	return h.registry.Publish(c.Room(), func() ([]byte, error) {
		msg := &models.Message{
			SenderID:    c.UserID(),
			RecipientID: c.PeerID(),
			Text:        text,
		}
		if err := h.storage.SaveMessage(msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		frame := models.ChatFrame{
			Message:     msg.Text,
			SenderID:    msg.SenderID,
			RecipientID: msg.RecipientID,
			Timestamp:   msg.Timestamp.Format(models.TimestampLayout),
		}

		// Best effort: local delivery does not depend on the bridge.
		env := models.BroadcastEnvelope{Room: c.Room(), Origin: h.instanceID, Frame: frame}
		if err := h.storage.PublishMessage(env); err != nil {
			log.Printf("failed to publish message for room %s: %v", c.Room(), err)
		}

		return json.Marshal(frame)
	})
}
