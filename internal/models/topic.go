package models

import (
	"time"
)

type Topic struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;unique" json:"title"`
	Description   string    `json:"description"`
	Category      string    `gorm:"size:50;index" json:"category"`
	Symbol        string    `gorm:"size:20" json:"symbol"`
	LearnerCount  int       `gorm:"default:0" json:"learner_count"`
	GrowthPercent float64   `gorm:"default:0" json:"growth_percent"`
	TrendingScore int       `gorm:"default:0;index" json:"trending_score"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
