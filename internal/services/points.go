package services

import (
	"luminate/internal/store"
)

// Point actions
const (
	ActionPostCreate     = "post created"
	ActionPostLiked      = "post liked"
	ActionPostDeleted    = "post deleted"
	ActionCommentCreate  = "comment created"
	ActionCommentLiked   = "comment liked"
	ActionCommentDeleted = "comment deleted"
	ActionLessonComplete = "lesson completed"
	ActionCourseEnroll   = "course enrolled"
)

// Point values
const (
	PointsPostCreate     = 1
	PointsPostLiked      = 1
	PointsPostDeleted    = -1
	PointsCommentCreate  = 1
	PointsCommentLiked   = 1
	PointsCommentDeleted = -1
	PointsLessonComplete = 2
	PointsCourseEnroll   = 1
)

// Daily earn limits
const (
	DailyPostLimit    = 3 // first 3 posts a day earn points
	DailyCommentLimit = 3 // first 3 comments a day earn points
)

// AddPoints moves the balance and writes the ledger entry; the store does
// both in one transaction.
func AddPoints(st store.Store, userID uint, amount int, action string) error {
	return st.AddPoints(userID, amount, action)
}

// AddPointsAsync awards points off the request path.
func AddPointsAsync(st store.Store, userID uint, amount int, action string) {
	go func() {
		_ = st.AddPoints(userID, amount, action)
	}()
}

// CanEarnPostPoints reports whether the user is still under today's posting
// earn limit.
func CanEarnPostPoints(st store.Store, userID uint) bool {
	count, err := st.CountPointLogsToday(userID, ActionPostCreate)
	if err != nil {
		return false
	}
	return count < DailyPostLimit
}

// CanEarnCommentPoints reports whether the user is still under today's
// comment earn limit.
func CanEarnCommentPoints(st store.Store, userID uint) bool {
	count, err := st.CountPointLogsToday(userID, ActionCommentCreate)
	if err != nil {
		return false
	}
	return count < DailyCommentLimit
}
