package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentType classifies a saved knowledge item. The storage enumeration is
// deliberately wider than the set most clients offer (note/task/other exist
// for imports and future use).
type ContentType string

const (
	TypeText     ContentType = "text"
	TypeTweet    ContentType = "tweet"
	TypeVideo    ContentType = "video"
	TypeDocument ContentType = "document"
	TypeLink     ContentType = "link"
	TypeNote     ContentType = "note"
	TypeTask     ContentType = "task"
	TypeOther    ContentType = "other"
)

// Valid reports whether t is a member of the storage enumeration.
func (t ContentType) Valid() bool {
	switch t {
	case TypeText, TypeTweet, TypeVideo, TypeDocument, TypeLink, TypeNote, TypeTask, TypeOther:
		return true
	}
	return false
}

// RequiresLink reports whether content of this type must carry an external URL.
func (t ContentType) RequiresLink() bool {
	return t == TypeLink || t == TypeTweet || t == TypeVideo
}

// TweetMetadata is the oEmbed block attached to tweet content.
// Field names follow the provider payload.
type TweetMetadata struct {
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	HTML         string `json:"html"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	CacheAge     string `json:"cache_age"`
	TweetURL     string `json:"tweet_url"`
}

// VideoMetadata is the oEmbed block attached to video content.
type VideoMetadata struct {
	HTML         string `json:"html"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
}

// Content represents a single saved knowledge item. At most one of the two
// metadata blocks is populated, and only for the matching type.
type Content struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	Title     string      `gorm:"not null" json:"title"`
	Body      string      `json:"body,omitempty"`
	Type      ContentType `gorm:"type:varchar(20);default:'text'" json:"type"`
	Link      string      `json:"link,omitempty"`

	TweetMetadata *datatypes.JSONType[TweetMetadata] `json:"tweet_metadata,omitempty"`
	VideoMetadata *datatypes.JSONType[VideoMetadata] `json:"video_metadata,omitempty"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Tags []Tag `gorm:"many2many:content_tags;" json:"tags,omitempty"`
}

// JSONOf wraps a metadata block for storage in a JSON column.
func JSONOf[T any](v T) *datatypes.JSONType[T] {
	j := datatypes.NewJSONType(v)
	return &j
}
