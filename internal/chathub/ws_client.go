package chathub

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"lecturehub/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 256
)

// WebSocketClient implements Client over a gorilla websocket connection.
type WebSocketClient struct {
	hub  *Hub
	user *models.User
	peer *models.User
	room string

	conn *websocket.Conn
	send chan []byte
}

// NewWebSocketClient wraps an admission in a connection-less client. The
// client can join its room and queue outbound frames before the handshake
// completes; Start attaches the connection and begins pumping.
func NewWebSocketClient(hub *Hub, adm *Admission) *WebSocketClient {
	return &WebSocketClient{
		hub:  hub,
		user: adm.User,
		peer: adm.Peer,
		room: adm.Room,
		send: make(chan []byte, sendQueueSize),
	}
}

func (c *WebSocketClient) UserID() uint        { return c.user.ID }
func (c *WebSocketClient) PeerID() uint        { return c.peer.ID }
func (c *WebSocketClient) Room() string        { return c.room }
func (c *WebSocketClient) Send() chan<- []byte { return c.send }

// Close releases the outbound channel, which stops the write pump. The hub
// calls this after the client has left its room.
func (c *WebSocketClient) Close() {
	close(c.send)
}

// Start attaches the upgraded connection, replays the conversation history
// as a single ordered batch, and starts the pumps. Frames broadcast to the
// room while history loads sit in the send queue and are written after the
// batch, preserving order. A failed replay is returned to the caller, which
// closes the connection.
func (c *WebSocketClient) Start(conn *websocket.Conn) error {
	c.conn = conn

	history, err := c.hub.History(c.user.ID, c.peer.ID)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, history); err != nil {
		return err
	}

	go c.writePump()
	go c.readPump()
	return nil
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.LeaveRoom(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from user %d: %v", c.user.ID, err)
			}
			break
		}

		var frame models.InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Malformed frames are dropped; the connection stays open.
			log.Printf("dropping malformed frame from user %d: %v", c.user.ID, err)
			continue
		}

		err = c.hub.HandleInbound(c, strings.TrimSpace(frame.Message))
		if errors.Is(err, ErrMalformedFrame) {
			log.Printf("dropping empty frame from user %d", c.user.ID)
			continue
		}
		if err != nil {
			// Persist failures are reported only to the origin socket.
			payload, _ := json.Marshal(models.ErrorFrame{Error: "message could not be saved"})
			select {
			case c.send <- payload:
			default:
			}
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
