package models

import (
	"time"
)

// Attachment kinds a post may carry.
const (
	AttachmentImage = "image"
	AttachmentCode  = "code"
	AttachmentVideo = "video"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Pid      string `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	TopicID  *uint  `gorm:"index" json:"topic_id"`
	Topic    *Topic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"topic,omitempty"`

	Content        string `gorm:"type:text" json:"content"`
	AttachmentType string `gorm:"size:20" json:"attachment_type,omitempty"`
	Attachment     string `gorm:"type:text" json:"attachment,omitempty"`

	// Maintained by increment/decrement on write, never recounted inline.
	Likes    int `gorm:"default:0" json:"likes"`
	Comments int `gorm:"default:0" json:"comments"`
	Reposts  int `gorm:"default:0" json:"reposts"`

	// A post with ReplyToID set is a reply and never appears in top-level
	// feed listings.
	ReplyToID *uint `gorm:"index" json:"reply_to_id,omitempty"`
	ReplyTo   *Post `gorm:"foreignKey:ReplyToID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// A repost keeps a snapshot of the original author/content so the feed
	// can still render it if the original is edited or deleted.
	RepostOfID    *uint  `gorm:"index" json:"repost_of_id,omitempty"`
	RepostOf      *Post  `gorm:"foreignKey:RepostOfID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	RepostAuthor  string `gorm:"size:100" json:"repost_author,omitempty"`
	RepostContent string `gorm:"type:text" json:"repost_content,omitempty"`

	Tags []Tag `gorm:"many2many:post_tags;" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
