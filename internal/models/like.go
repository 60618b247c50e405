package models

import (
	"time"
)

// Like endorses either a post or a comment, exactly one of the two. The
// composite unique indexes close the duplicate-like race at the schema
// level: Postgres treats NULL as distinct, so post likes and comment likes
// never collide on each other's index.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_comment" json:"user_id"`
	PostID    *uint     `gorm:"index;uniqueIndex:idx_like_user_post" json:"post_id,omitempty"`
	Post      *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CommentID *uint     `gorm:"index;uniqueIndex:idx_like_user_comment" json:"comment_id,omitempty"`
	Comment   *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
