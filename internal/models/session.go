package models

import "time"

// Session is one issued login token. At most one session per user is
// current at any time; activating a new one deactivates the rest inside a
// single transaction (see storage.CreateSession). Sessions are never hard
// deleted, logout only clears the flag.
type Session struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `json:"-"`
	// Token is the opaque bearer string presented on every request and on
	// the websocket handshake.
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	IsCurrent bool   `gorm:"index" json:"is_current"`
	// IsFirstLogin is true on the very first session a user creates.
	IsFirstLogin bool      `json:"is_first_login"`
	CreatedAt    time.Time `json:"created_at"`
}
