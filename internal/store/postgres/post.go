package postgres

import (
	"errors"
	"time"

	"luminate/internal/models"
	"luminate/internal/store"
	"luminate/internal/utils"

	"gorm.io/gorm"
)

// ---- Posts ----

func (s *Store) CreatePost(p *models.Post) error {
	if p.Pid == "" {
		p.Pid = utils.RandStringBytesMaskImpr(8)
	}
	p.Likes = 0
	p.Comments = 0

	return s.db.Transaction(func(tx *gorm.DB) error {
		if p.TopicID != nil {
			var topic models.Topic
			if err := tx.First(&topic, *p.TopicID).Error; err != nil {
				return notFound(err)
			}
		}
		if p.ReplyToID != nil {
			var parent models.Post
			if err := tx.First(&parent, *p.ReplyToID).Error; err != nil {
				return notFound(err)
			}
		}
		if p.RepostOfID != nil {
			var original models.Post
			if err := tx.Preload("Author").First(&original, *p.RepostOfID).Error; err != nil {
				return notFound(err)
			}
			p.RepostAuthor = original.Author.Username
			p.RepostContent = original.Content
			if err := tx.Model(&models.Post{}).Where("id = ?", original.ID).
				UpdateColumn("reposts", gorm.Expr("reposts + 1")).Error; err != nil {
				return err
			}
		}
		return tx.Create(p).Error
	})
}

func (s *Store) GetPost(id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.Preload("Author").Preload("Topic").Preload("Tags").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) GetPostByPid(pid string) (*models.Post, error) {
	var p models.Post
	if err := s.db.Preload("Author").Preload("Topic").Preload("Tags").
		Where("pid = ?", pid).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) ListPosts(opts store.ListPostsOptions) ([]models.Post, int64, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 20
	}

	// Replies never surface in the top-level feed.
	base := s.db.Model(&models.Post{}).Where("reply_to_id IS NULL")
	if opts.TopicID != nil {
		base = base.Where("topic_id = ?", *opts.TopicID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.Preload("Author").Preload("Topic").Preload("Tags").
		Where("reply_to_id IS NULL")
	if opts.TopicID != nil {
		query = query.Where("topic_id = ?", *opts.TopicID)
	}

	switch opts.Tab {
	case store.TabPopular:
		query = query.Order("likes DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var posts []models.Post
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Store) ListReplies(postID uint) ([]models.Post, error) {
	var parent models.Post
	if err := s.db.Select("id").First(&parent, postID).Error; err != nil {
		return nil, notFound(err)
	}
	var replies []models.Post
	if err := s.db.Preload("Author").
		Where("reply_to_id = ?", postID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

func (s *Store) EditPost(id uint, content string) (*models.Post, error) {
	res := s.db.Model(&models.Post{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetPost(id)
}

func (s *Store) DeletePost(id uint) error {
	// Replies, comments and likes go with the post via schema-level
	// cascades; reposts keep their snapshot and lose the FK.
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Post
		if err := tx.First(&p, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Unscoped().Delete(&models.Post{}, id).Error; err != nil {
			return err
		}
		// A deleted repost no longer counts against its original.
		if p.RepostOfID != nil {
			return tx.Model(&models.Post{}).Where("id = ?", *p.RepostOfID).
				UpdateColumn("reposts", gorm.Expr("GREATEST(reposts - 1, 0)")).Error
		}
		return nil
	})
}

// ---- Likes ----

// LikePost inserts the like row and bumps the counter in one transaction.
// The unique index on (user_id, post_id) turns a concurrent duplicate into
// a duplicate-key error, which is treated as "already liked": no counter
// bump, current count returned with added=false.
func (s *Store) LikePost(userID, postID uint) (int, bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, PostID: &postID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	added := err == nil
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return 0, false, store.ErrNotFound
		}
		return 0, false, err
	}
	count, err := s.postLikeCount(postID)
	return count, added, err
}

// UnlikePost deletes the row if present and floors the counter at zero.
func (s *Store) UnlikePost(userID, postID uint) (int, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // nothing to remove
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
	})
	if err != nil {
		return 0, err
	}
	return s.postLikeCount(postID)
}

func (s *Store) postLikeCount(postID uint) (int, error) {
	var p models.Post
	if err := s.db.Select("likes").First(&p, postID).Error; err != nil {
		return 0, notFound(err)
	}
	return p.Likes, nil
}

func (s *Store) HasUserLikedPost(userID, postID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) LikeComment(userID, commentID uint) (int, bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, CommentID: &commentID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	added := err == nil
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return 0, false, store.ErrNotFound
		}
		return 0, false, err
	}
	count, err := s.commentLikeCount(commentID)
	return count, added, err
}

func (s *Store) UnlikeComment(userID, commentID uint) (int, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
	})
	if err != nil {
		return 0, err
	}
	return s.commentLikeCount(commentID)
}

func (s *Store) commentLikeCount(commentID uint) (int, error) {
	var cm models.Comment
	if err := s.db.Select("likes").First(&cm, commentID).Error; err != nil {
		return 0, notFound(err)
	}
	return cm.Likes, nil
}

// ---- Comments ----

func (s *Store) CreateComment(cm *models.Comment) error {
	if cm.Cid == "" {
		cm.Cid = utils.RandStringBytesMaskImpr(8)
	}
	cm.Likes = 0

	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, cm.PostID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Create(cm).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", cm.PostID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error
	})
}

func (s *Store) GetComment(id uint) (*models.Comment, error) {
	var cm models.Comment
	if err := s.db.Preload("Author").First(&cm, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cm, nil
}

func (s *Store) GetCommentByCid(cid string) (*models.Comment, error) {
	var cm models.Comment
	if err := s.db.Preload("Author").Where("cid = ?", cid).First(&cm).Error; err != nil {
		return nil, notFound(err)
	}
	return &cm, nil
}

func (s *Store) ListComments(postID uint) ([]models.Comment, error) {
	var post models.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		return nil, notFound(err)
	}
	var comments []models.Comment
	if err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) EditComment(id uint, content string) (*models.Comment, error) {
	now := time.Now()
	res := s.db.Model(&models.Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":   content,
		"edited_at": &now,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetComment(id)
}

func (s *Store) DeleteComment(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cm models.Comment
		if err := tx.First(&cm, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Unscoped().Delete(&cm).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", cm.PostID).
			UpdateColumn("comments", gorm.Expr("GREATEST(comments - 1, 0)")).Error
	})
}
