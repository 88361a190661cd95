package models

// TimestampLayout is the second-precision format used on every wire frame.
const TimestampLayout = "2006-01-02 15:04:05"

// InboundFrame is the only frame clients may send over the websocket.
type InboundFrame struct {
	Message string `json:"message"`
}

// ChatFrame is the live broadcast frame delivered to every socket in a room.
type ChatFrame struct {
	Message     string `json:"message"`
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Timestamp   string `json:"timestamp"`
}

// HistoryEntry is one element of the history batch replayed on admission.
type HistoryEntry struct {
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
}

// ErrorFrame reports a per-operation failure back to the socket that
// caused it. It is never broadcast.
type ErrorFrame struct {
	Error string `json:"error"`
}

// BroadcastEnvelope wraps a ChatFrame for the cross-instance Redis channel.
// Origin identifies the publishing instance so it can skip its own
// payloads when they come back around.
type BroadcastEnvelope struct {
	Room   string    `json:"room"`
	Origin string    `json:"origin"`
	Frame  ChatFrame `json:"frame"`
}
