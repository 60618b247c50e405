package postgres

import (
	"errors"
	"time"

	"luminate/internal/models"
	"luminate/internal/store"

	"gorm.io/gorm"
)

// ---- Courses ----

func (s *Store) CreateCourse(c *models.Course) error {
	return s.db.Create(c).Error
}

func (s *Store) ListCourses(category string) ([]models.Course, error) {
	query := s.db.Preload("Instructor").Preload("Tags").Order("id ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *Store) GetCourse(id uint) (*models.Course, error) {
	var c models.Course
	if err := s.db.Preload("Instructor").Preload("Tags").First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Store) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	var course models.Course
	if err := s.db.Select("id").First(&course, courseID).Error; err != nil {
		return nil, notFound(err)
	}
	e := models.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		LastActivityAt: time.Now(),
	}
	if err := s.db.Create(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return &e, nil
}

func (s *Store) UpdateProgress(userID, courseID uint, lessonsCompleted int) (*models.Enrollment, error) {
	var course models.Course
	if err := s.db.Select("id, lesson_count").First(&course, courseID).Error; err != nil {
		return nil, notFound(err)
	}

	var e models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error; err != nil {
		return nil, notFound(err)
	}

	if lessonsCompleted < 0 {
		lessonsCompleted = 0
	}
	if lessonsCompleted > course.LessonCount {
		lessonsCompleted = course.LessonCount
	}
	e.LessonsCompleted = lessonsCompleted
	if course.LessonCount > 0 {
		e.PercentComplete = float64(lessonsCompleted) / float64(course.LessonCount) * 100
	}
	e.LastActivityAt = time.Now()

	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEnrollments(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.Preload("Course").Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("last_activity_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ---- Points ----

// AddPoints records the ledger entry and moves the balance in one
// transaction so the log always sums to the balance.
func (s *Store) AddPoints(userID uint, amount int, action string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.PointLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", amount)).
			Error
	})
}

func (s *Store) CountPointLogsToday(userID uint, action string) (int64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	err := s.db.Model(&models.PointLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ?", userID, action, startOfDay).
		Count(&count).Error
	return count, err
}

func (s *Store) ListPointLogs(userID uint, limit int) ([]models.PointLog, error) {
	if limit < 1 {
		limit = 50
	}
	var logs []models.PointLog
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ---- Notifications ----

func (s *Store) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *Store) ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit < 1 {
		limit = 50
	}
	var notifications []models.Notification
	if err := s.db.Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) CountUnreadNotifications(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *Store) MarkNotificationRead(userID, id uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- Generated AI content ----

func (s *Store) SaveGeneratedContent(gc *models.GeneratedContent) error {
	return s.db.Create(gc).Error
}

func (s *Store) ListGeneratedContent(topicID *uint, limit int) ([]models.GeneratedContent, error) {
	if limit < 1 {
		limit = 20
	}
	query := s.db.Order("created_at DESC").Limit(limit)
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	var items []models.GeneratedContent
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
