package models

import "time"

// Message is one persisted chat message between two users. Rows are
// immutable once written except for the read-tracking fields, which only
// the storage layer may flip.
type Message struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	SenderID    uint `gorm:"not null;index:idx_msg_pair" json:"sender_id"`
	Sender      User `json:"-"`
	RecipientID uint `gorm:"not null;index:idx_msg_pair" json:"recipient_id"`
	Recipient   User `json:"-"`

	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	ReadAt *time.Time `json:"read_at"`
	IsRead bool       `json:"is_read"`
}

// HistoryEntry returns the wire representation used in the history batch
// sent right after a websocket connection is admitted.
func (m *Message) HistoryEntry() HistoryEntry {
	return HistoryEntry{
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		Timestamp:   m.Timestamp.Format(TimestampLayout),
	}
}
