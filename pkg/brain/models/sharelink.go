package models

import "time"

// ShareLink grants read-only access to a user's full content set. The hash is
// the public-facing identifier; a user has at most one active link at a time.
type ShareLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Hash      string    `gorm:"uniqueIndex;not null" json:"hash"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
