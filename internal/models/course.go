package models

import (
	"time"
)

type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:50;index" json:"category"`
	Difficulty   string    `gorm:"size:20" json:"difficulty"` // beginner, intermediate, advanced
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	Instructor   User      `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"instructor"`
	LessonCount  int       `gorm:"default:0" json:"lesson_count"`
	Tags         []Tag     `gorm:"many2many:course_tags;" json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Enrollment tracks a user's progress through a course.
type Enrollment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID         uint      `gorm:"not null;index;uniqueIndex:idx_user_course" json:"course_id"`
	Course           Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"course"`
	LessonsCompleted int       `gorm:"default:0" json:"lessons_completed"`
	PercentComplete  float64   `gorm:"default:0" json:"percent_complete"`
	LastActivityAt   time.Time `json:"last_activity_at"`
	CreatedAt        time.Time `json:"created_at"`
}
