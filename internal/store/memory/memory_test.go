package memory

import (
	"testing"

	"luminate/internal/models"
	"luminate/internal/store"
)

func newTestStore(t *testing.T) (*Store, *models.User, *models.User, *models.Topic) {
	t.Helper()
	s := New()

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	if err := s.CreateUser(alice); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	if err := s.CreateUser(bob); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	topic := &models.Topic{Title: "Programming", Category: "technology"}
	if err := s.CreateTopic(topic); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	return s, alice, bob, topic
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	s, alice, bob, topic := newTestStore(t)

	post := &models.Post{AuthorID: alice.ID, TopicID: &topic.ID, Content: "hello"}
	if err := s.CreatePost(post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Likes != 0 {
		t.Fatalf("new post likes = %d, want 0", post.Likes)
	}

	likes, added, err := s.LikePost(bob.ID, post.ID)
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if likes != 1 || !added {
		t.Errorf("LikePost = %d, %v, want 1, true", likes, added)
	}

	liked, err := s.HasUserLikedPost(bob.ID, post.ID)
	if err != nil || !liked {
		t.Errorf("HasUserLikedPost = %v, %v, want true, nil", liked, err)
	}

	// Duplicate like is a no-op and reports nothing inserted.
	likes, added, err = s.LikePost(bob.ID, post.ID)
	if err != nil {
		t.Fatalf("duplicate LikePost: %v", err)
	}
	if likes != 1 || added {
		t.Errorf("duplicate LikePost = %d, %v, want 1, false", likes, added)
	}

	likes, err = s.UnlikePost(bob.ID, post.ID)
	if err != nil {
		t.Fatalf("UnlikePost: %v", err)
	}
	if likes != 0 {
		t.Errorf("likes after unlike = %d, want 0", likes)
	}

	liked, _ = s.HasUserLikedPost(bob.ID, post.ID)
	if liked {
		t.Error("like row still present after unlike")
	}

	// Unlike with no matching row stays at zero, never negative.
	likes, err = s.UnlikePost(bob.ID, post.ID)
	if err != nil {
		t.Fatalf("second UnlikePost: %v", err)
	}
	if likes != 0 {
		t.Errorf("likes after redundant unlike = %d, want 0", likes)
	}
}

func TestRepliesExcludedFromFeed(t *testing.T) {
	s, alice, bob, topic := newTestStore(t)

	parent := &models.Post{AuthorID: alice.ID, TopicID: &topic.ID, Content: "parent"}
	if err := s.CreatePost(parent); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	reply := &models.Post{AuthorID: bob.ID, Content: "reply", ReplyToID: &parent.ID}
	if err := s.CreatePost(reply); err != nil {
		t.Fatalf("CreatePost reply: %v", err)
	}

	posts, total, err := s.ListPosts(store.ListPostsOptions{Tab: store.TabLatest, Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 1 || len(posts) != 1 {
		t.Fatalf("feed returned %d posts (total %d), want 1", len(posts), total)
	}
	if posts[0].ID != parent.ID {
		t.Errorf("feed post id = %d, want parent %d", posts[0].ID, parent.ID)
	}

	replies, err := s.ListReplies(parent.ID)
	if err != nil {
		t.Fatalf("ListReplies: %v", err)
	}
	if len(replies) != 1 || replies[0].ID != reply.ID {
		t.Errorf("ListReplies = %v, want the one reply", replies)
	}
}

func TestPopularOrdering(t *testing.T) {
	s, alice, bob, _ := newTestStore(t)

	first := &models.Post{AuthorID: alice.ID, Content: "first"}
	second := &models.Post{AuthorID: alice.ID, Content: "second"}
	if err := s.CreatePost(first); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePost(second); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.LikePost(bob.ID, second.ID); err != nil {
		t.Fatal(err)
	}

	posts, _, err := s.ListPosts(store.ListPostsOptions{Tab: store.TabPopular, Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if posts[0].ID != second.ID {
		t.Errorf("popular feed leads with post %d, want most-liked %d", posts[0].ID, second.ID)
	}
}

func TestRepostSnapshotAndCounter(t *testing.T) {
	s, alice, bob, _ := newTestStore(t)

	original := &models.Post{AuthorID: alice.ID, Content: "original insight"}
	if err := s.CreatePost(original); err != nil {
		t.Fatal(err)
	}

	// Reposts may carry no commentary.
	repost := &models.Post{AuthorID: bob.ID, RepostOfID: &original.ID}
	if err := s.CreatePost(repost); err != nil {
		t.Fatalf("CreatePost repost: %v", err)
	}
	if repost.RepostAuthor != "alice" || repost.RepostContent != "original insight" {
		t.Errorf("repost snapshot = %q/%q, want alice/original insight", repost.RepostAuthor, repost.RepostContent)
	}

	got, err := s.GetPost(original.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reposts != 1 {
		t.Errorf("original reposts = %d, want 1", got.Reposts)
	}

	// Deleting the original detaches the FK but keeps the snapshot.
	if err := s.DeletePost(original.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	kept, err := s.GetPost(repost.ID)
	if err != nil {
		t.Fatalf("repost vanished with original: %v", err)
	}
	if kept.RepostOfID != nil {
		t.Error("repost still points at deleted original")
	}
	if kept.RepostContent != "original insight" {
		t.Error("repost snapshot lost on original deletion")
	}
}

func TestDeleteRepostDecrementsOriginal(t *testing.T) {
	s, alice, bob, _ := newTestStore(t)

	original := &models.Post{AuthorID: alice.ID, Content: "shared twice"}
	if err := s.CreatePost(original); err != nil {
		t.Fatal(err)
	}
	first := &models.Post{AuthorID: bob.ID, RepostOfID: &original.ID}
	if err := s.CreatePost(first); err != nil {
		t.Fatal(err)
	}
	second := &models.Post{AuthorID: alice.ID, RepostOfID: &original.ID}
	if err := s.CreatePost(second); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetPost(original.ID)
	if got.Reposts != 2 {
		t.Fatalf("original reposts = %d, want 2", got.Reposts)
	}

	// The counter tracks surviving repost rows.
	if err := s.DeletePost(first.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	got, _ = s.GetPost(original.ID)
	if got.Reposts != 1 {
		t.Errorf("reposts after deleting one repost = %d, want 1", got.Reposts)
	}

	if err := s.DeletePost(second.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	got, _ = s.GetPost(original.ID)
	if got.Reposts != 0 {
		t.Errorf("reposts after deleting both = %d, want 0", got.Reposts)
	}
}

func TestDeletePostCascades(t *testing.T) {
	s, alice, bob, topic := newTestStore(t)

	post := &models.Post{AuthorID: alice.ID, TopicID: &topic.ID, Content: "doomed"}
	if err := s.CreatePost(post); err != nil {
		t.Fatal(err)
	}
	reply := &models.Post{AuthorID: bob.ID, Content: "reply", ReplyToID: &post.ID}
	if err := s.CreatePost(reply); err != nil {
		t.Fatal(err)
	}
	comment := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "nice"}
	if err := s.CreateComment(comment); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.LikePost(bob.ID, post.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.LikeComment(alice.ID, comment.ID); err != nil {
		t.Fatal(err)
	}

	if err := s.DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	if _, err := s.GetPost(post.ID); err != store.ErrNotFound {
		t.Errorf("post still present after delete: %v", err)
	}
	if _, err := s.GetPost(reply.ID); err != store.ErrNotFound {
		t.Errorf("reply survived post deletion: %v", err)
	}
	if _, err := s.GetComment(comment.ID); err != store.ErrNotFound {
		t.Errorf("comment survived post deletion: %v", err)
	}
	if len(s.likes) != 0 {
		t.Errorf("%d like rows survived post deletion", len(s.likes))
	}

	// Deleting again reports absence.
	if err := s.DeletePost(post.ID); err != store.ErrNotFound {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestCommentCounterTracksRows(t *testing.T) {
	s, alice, bob, _ := newTestStore(t)

	post := &models.Post{AuthorID: alice.ID, Content: "discuss"}
	if err := s.CreatePost(post); err != nil {
		t.Fatal(err)
	}

	cm := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "first"}
	if err := s.CreateComment(cm); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetPost(post.ID)
	if got.Comments != 1 {
		t.Errorf("comments counter = %d, want 1", got.Comments)
	}

	if err := s.DeleteComment(cm.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	got, _ = s.GetPost(post.ID)
	if got.Comments != 0 {
		t.Errorf("comments counter after delete = %d, want 0", got.Comments)
	}
}

func TestInterestsAreUniqueAndCounted(t *testing.T) {
	s, _, bob, topic := newTestStore(t)

	if err := s.AddInterest(bob.ID, topic.ID); err != nil {
		t.Fatalf("AddInterest: %v", err)
	}
	if err := s.AddInterest(bob.ID, topic.ID); err != nil {
		t.Fatalf("duplicate AddInterest: %v", err)
	}

	got, _ := s.GetTopic(topic.ID)
	if got.LearnerCount != 1 {
		t.Errorf("learner count = %d, want 1", got.LearnerCount)
	}

	if err := s.RemoveInterest(bob.ID, topic.ID); err != nil {
		t.Fatalf("RemoveInterest: %v", err)
	}
	got, _ = s.GetTopic(topic.ID)
	if got.LearnerCount != 0 {
		t.Errorf("learner count after remove = %d, want 0", got.LearnerCount)
	}
}

func TestEnrollmentProgressClamped(t *testing.T) {
	s, alice, bob, _ := newTestStore(t)

	course := &models.Course{Title: "Go Basics", InstructorID: alice.ID, LessonCount: 10}
	if err := s.CreateCourse(course); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Enroll(bob.ID, course.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := s.Enroll(bob.ID, course.ID); err != store.ErrConflict {
		t.Errorf("double enroll = %v, want ErrConflict", err)
	}

	e, err := s.UpdateProgress(bob.ID, course.ID, 25)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if e.LessonsCompleted != 10 || e.PercentComplete != 100 {
		t.Errorf("progress = %d lessons %.0f%%, want clamped to 10 lessons 100%%", e.LessonsCompleted, e.PercentComplete)
	}
}

func TestPointsLedgerMatchesBalance(t *testing.T) {
	s, alice, _, _ := newTestStore(t)

	if err := s.AddPoints(alice.ID, 3, "post created"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPoints(alice.ID, -1, "post deleted"); err != nil {
		t.Fatal(err)
	}

	u, _ := s.GetUser(alice.ID)
	if u.Points != 2 {
		t.Errorf("balance = %d, want 2", u.Points)
	}

	logs, err := s.ListPointLogs(alice.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, l := range logs {
		sum += l.Amount
	}
	if sum != u.Points {
		t.Errorf("ledger sums to %d, balance is %d", sum, u.Points)
	}

	count, err := s.CountPointLogsToday(alice.ID, "post created")
	if err != nil || count != 1 {
		t.Errorf("CountPointLogsToday = %d, %v, want 1, nil", count, err)
	}
}

func TestTopicEngagementCounts(t *testing.T) {
	s, alice, bob, topic := newTestStore(t)

	post := &models.Post{AuthorID: alice.ID, TopicID: &topic.ID, Content: "on topic"}
	if err := s.CreatePost(post); err != nil {
		t.Fatal(err)
	}
	off := &models.Post{AuthorID: alice.ID, Content: "off topic"}
	if err := s.CreatePost(off); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.LikePost(bob.ID, post.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateComment(&models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "hi"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddInterest(bob.ID, topic.ID); err != nil {
		t.Fatal(err)
	}

	eng, err := s.GetTopicEngagement(topic.ID)
	if err != nil {
		t.Fatalf("GetTopicEngagement: %v", err)
	}
	want := store.TopicEngagement{Posts: 1, Likes: 1, Comments: 1, Followers: 1}
	if eng != want {
		t.Errorf("engagement = %+v, want %+v", eng, want)
	}
}
