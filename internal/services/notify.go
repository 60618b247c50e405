package services

import (
	"fmt"

	"luminate/internal/models"
	"luminate/internal/store"
)

// NotifyCommented tells a post's author someone commented. Self-comments
// are skipped.
func NotifyCommented(st store.Store, post *models.Post, actor *models.User) {
	if post.AuthorID == actor.ID {
		return
	}
	n := models.Notification{
		UserID:  post.AuthorID,
		ActorID: &actor.ID,
		Type:    models.NotificationTypeCommentPost,
		Reason:  fmt.Sprintf("%s commented on your post", actor.Username),
	}
	_ = st.CreateNotification(&n)
}

// NotifyReplied tells a post's author someone replied in the feed.
func NotifyReplied(st store.Store, parent *models.Post, actor *models.User) {
	if parent.AuthorID == actor.ID {
		return
	}
	n := models.Notification{
		UserID:  parent.AuthorID,
		ActorID: &actor.ID,
		Type:    models.NotificationTypeReplyPost,
		Reason:  fmt.Sprintf("%s replied to your post", actor.Username),
	}
	_ = st.CreateNotification(&n)
}

// NotifyLiked tells a content author about a like and awards the author's
// points. Self-likes do neither.
func NotifyLiked(st store.Store, authorID uint, actor *models.User, isComment bool) {
	if authorID == actor.ID {
		return
	}
	what := "post"
	points := PointsPostLiked
	action := ActionPostLiked
	if isComment {
		what = "comment"
		points = PointsCommentLiked
		action = ActionCommentLiked
	}
	n := models.Notification{
		UserID:  authorID,
		ActorID: &actor.ID,
		Type:    models.NotificationTypeLike,
		Reason:  fmt.Sprintf("%s liked your %s", actor.Username, what),
	}
	_ = st.CreateNotification(&n)
	_ = st.AddPoints(authorID, points, action)
}
