package models

import (
	"time"
)

// UserInterest marks a user as following a topic. One row per (user, topic)
// pair; the topic's learner count tracks these rows.
type UserInterest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_topic" json:"user_id"`
	TopicID   uint      `gorm:"not null;index;uniqueIndex:idx_user_topic" json:"topic_id"`
	Topic     Topic     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}
