package postgres

import (
	"errors"
	"strings"

	"luminate/internal/models"
	"luminate/internal/store"

	"gorm.io/gorm"
)

// ---- Topics ----

func (s *Store) CreateTopic(t *models.Topic) error {
	if err := s.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) ListTopics() ([]models.Topic, error) {
	var topics []models.Topic
	if err := s.db.Order("id ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *Store) GetTopic(id uint) (*models.Topic, error) {
	var t models.Topic
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// AddInterest is idempotent: the unique index on (user_id, topic_id) turns
// a second follow into a no-op without a learner-count bump.
func (s *Store) AddInterest(userID, topicID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Select("id").First(&topic, topicID).Error; err != nil {
			return notFound(err)
		}
		interest := models.UserInterest{UserID: userID, TopicID: topicID}
		if err := tx.Create(&interest).Error; err != nil {
			return err
		}
		return tx.Model(&models.Topic{}).Where("id = ?", topicID).
			UpdateColumn("learner_count", gorm.Expr("learner_count + 1")).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (s *Store) RemoveInterest(userID, topicID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Select("id").First(&topic, topicID).Error; err != nil {
			return notFound(err)
		}
		res := tx.Where("user_id = ? AND topic_id = ?", userID, topicID).Delete(&models.UserInterest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Topic{}).Where("id = ?", topicID).
			UpdateColumn("learner_count", gorm.Expr("GREATEST(learner_count - 1, 0)")).Error
	})
}

func (s *Store) ListTrendingTopics(limit int) ([]models.Topic, error) {
	if limit < 1 {
		limit = 10
	}
	var topics []models.Topic
	if err := s.db.Order("trending_score DESC, id ASC").Limit(limit).Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *Store) UpdateTopicTrending(topicID uint, score int, growth float64) error {
	res := s.db.Model(&models.Topic{}).Where("id = ?", topicID).Updates(map[string]interface{}{
		"trending_score": score,
		"growth_percent": growth,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetTopicEngagement(topicID uint) (store.TopicEngagement, error) {
	var eng store.TopicEngagement

	var topic models.Topic
	if err := s.db.Select("id").First(&topic, topicID).Error; err != nil {
		return eng, notFound(err)
	}

	if err := s.db.Model(&models.Post{}).Where("topic_id = ?", topicID).Count(&eng.Posts).Error; err != nil {
		return eng, err
	}
	if err := s.db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.topic_id = ?", topicID).
		Count(&eng.Likes).Error; err != nil {
		return eng, err
	}
	if err := s.db.Model(&models.Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.topic_id = ?", topicID).
		Count(&eng.Comments).Error; err != nil {
		return eng, err
	}
	if err := s.db.Model(&models.UserInterest{}).Where("topic_id = ?", topicID).Count(&eng.Followers).Error; err != nil {
		return eng, err
	}
	return eng, nil
}

func (s *Store) ListTopicIDs() ([]uint, error) {
	var ids []uint
	if err := s.db.Model(&models.Topic{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ---- Tags ----

func (s *Store) TagPost(postID uint, names []string) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		return notFound(err)
	}

	var tags []models.Tag
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := s.db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return s.db.Model(&post).Association("Tags").Append(tags)
}
