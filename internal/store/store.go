// Package store defines the data-access facade the route handlers are
// written against. Two implementations satisfy it: a Postgres-backed store
// for production and an in-memory store for development and tests.
package store

import (
	"errors"

	"luminate/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist. Handlers
// translate it to HTTP 404.
var ErrNotFound = errors.New("store: not found")

// ErrConflict is returned when a uniqueness invariant would be violated,
// e.g. registering an email twice or enrolling in the same course twice.
var ErrConflict = errors.New("store: conflict")

// Feed tabs accepted by ListPosts.
const (
	TabPopular = "popular" // likes descending
	TabLatest  = "latest"  // creation time descending
)

// ListPostsOptions filters and pages the top-level feed. Replies are always
// excluded regardless of options.
type ListPostsOptions struct {
	Tab     string
	TopicID *uint
	Page    int
	PerPage int
}

// TopicEngagement is the raw activity a topic has accumulated, consumed by
// the trending worker.
type TopicEngagement struct {
	Posts     int64
	Likes     int64
	Comments  int64
	Followers int64
}

type Store interface {
	// Users
	CreateUser(u *models.User) error
	GetUser(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(u *models.User) error

	// Posts. CreatePost assigns ID/Pid and bumps the original's repost
	// counter when RepostOfID is set. DeletePost cascades to replies,
	// comments and likes.
	CreatePost(p *models.Post) error
	GetPost(id uint) (*models.Post, error)
	GetPostByPid(pid string) (*models.Post, error)
	ListPosts(opts ListPostsOptions) ([]models.Post, int64, error)
	ListReplies(postID uint) ([]models.Post, error)
	EditPost(id uint, content string) (*models.Post, error)
	DeletePost(id uint) error

	// Likes. Idempotent by contract: a duplicate like or an unlike with no
	// matching row is a no-op. The returned count is the resulting counter,
	// floored at zero; added reports whether the like row was newly
	// inserted so callers can skip side effects on duplicates.
	LikePost(userID, postID uint) (count int, added bool, err error)
	UnlikePost(userID, postID uint) (int, error)
	HasUserLikedPost(userID, postID uint) (bool, error)
	LikeComment(userID, commentID uint) (count int, added bool, err error)
	UnlikeComment(userID, commentID uint) (int, error)

	// Comments
	CreateComment(cm *models.Comment) error
	GetComment(id uint) (*models.Comment, error)
	GetCommentByCid(cid string) (*models.Comment, error)
	ListComments(postID uint) ([]models.Comment, error)
	EditComment(id uint, content string) (*models.Comment, error)
	DeleteComment(id uint) error

	// Topics and interests
	CreateTopic(t *models.Topic) error
	ListTopics() ([]models.Topic, error)
	GetTopic(id uint) (*models.Topic, error)
	AddInterest(userID, topicID uint) error
	RemoveInterest(userID, topicID uint) error
	ListTrendingTopics(limit int) ([]models.Topic, error)
	UpdateTopicTrending(topicID uint, score int, growth float64) error
	GetTopicEngagement(topicID uint) (TopicEngagement, error)
	ListTopicIDs() ([]uint, error)

	// Tags
	TagPost(postID uint, names []string) error

	// Courses
	CreateCourse(c *models.Course) error
	ListCourses(category string) ([]models.Course, error)
	GetCourse(id uint) (*models.Course, error)
	Enroll(userID, courseID uint) (*models.Enrollment, error)
	UpdateProgress(userID, courseID uint, lessonsCompleted int) (*models.Enrollment, error)
	ListEnrollments(userID uint) ([]models.Enrollment, error)

	// Points
	AddPoints(userID uint, amount int, action string) error
	CountPointLogsToday(userID uint, action string) (int64, error)
	ListPointLogs(userID uint, limit int) ([]models.PointLog, error)

	// Notifications
	CreateNotification(n *models.Notification) error
	ListNotifications(userID uint, limit int) ([]models.Notification, error)
	CountUnreadNotifications(userID uint) (int64, error)
	MarkNotificationRead(userID, id uint) error

	// Generated AI content
	SaveGeneratedContent(gc *models.GeneratedContent) error
	ListGeneratedContent(topicID *uint, limit int) ([]models.GeneratedContent, error)
}
