package models

import (
	"time"
)

// GeneratedContent caches LLM output so repeated requests for the same
// topic do not burn tokens.
type GeneratedContent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"uniqueIndex;size:36;not null" json:"request_id"` // uuid
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TopicID   *uint     `gorm:"index" json:"topic_id,omitempty"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Model     string    `gorm:"size:100" json:"model"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
