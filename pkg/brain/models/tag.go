package models

import "time"

// Tag represents a short label attachable to content. Titles are unique per
// user; two users may each own a "golang" tag.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_tags_user_title" json:"user_id"`
	Title     string    `gorm:"not null;uniqueIndex:idx_tags_user_title" json:"title"`

	// Relationships
	Contents []Content `gorm:"many2many:content_tags;" json:"contents,omitempty"`
}
