// Package memory implements store.Store over in-process maps. It exists for
// development and tests; state lives in a single process's heap and is not
// meant for horizontal scaling. One mutex serializes every operation, which
// also closes the like/unlike race the relational store closes with a
// unique index.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"luminate/internal/models"
	"luminate/internal/store"
	"luminate/internal/utils"
)

type Store struct {
	mu sync.RWMutex

	users         map[uint]*models.User
	posts         map[uint]*models.Post
	comments      map[uint]*models.Comment
	likes         map[uint]*models.Like
	topics        map[uint]*models.Topic
	interests     map[uint]*models.UserInterest
	tags          map[uint]*models.Tag
	postTags      map[uint][]uint
	courses       map[uint]*models.Course
	enrollments   map[uint]*models.Enrollment
	pointLogs     []models.PointLog
	notifications map[uint]*models.Notification
	generated     []models.GeneratedContent

	userSeq, postSeq, commentSeq, likeSeq, topicSeq     uint
	interestSeq, tagSeq, courseSeq, enrollSeq, notifSeq uint
	pointSeq, genSeq                                    uint
}

func New() *Store {
	return &Store{
		users:         make(map[uint]*models.User),
		posts:         make(map[uint]*models.Post),
		comments:      make(map[uint]*models.Comment),
		likes:         make(map[uint]*models.Like),
		topics:        make(map[uint]*models.Topic),
		interests:     make(map[uint]*models.UserInterest),
		tags:          make(map[uint]*models.Tag),
		postTags:      make(map[uint][]uint),
		courses:       make(map[uint]*models.Course),
		enrollments:   make(map[uint]*models.Enrollment),
		notifications: make(map[uint]*models.Notification),
	}
}

var _ store.Store = (*Store)(nil)

// ---- Users ----

func (s *Store) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrConflict
		}
	}

	s.userSeq++
	u.ID = s.userSeq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// ---- Posts ----

func (s *Store) CreatePost(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[p.AuthorID]; !ok {
		return store.ErrNotFound
	}
	if p.TopicID != nil {
		if _, ok := s.topics[*p.TopicID]; !ok {
			return store.ErrNotFound
		}
	}
	if p.ReplyToID != nil {
		if _, ok := s.posts[*p.ReplyToID]; !ok {
			return store.ErrNotFound
		}
	}
	if p.RepostOfID != nil {
		original, ok := s.posts[*p.RepostOfID]
		if !ok {
			return store.ErrNotFound
		}
		// Snapshot the original for display even if it later changes.
		if author, ok := s.users[original.AuthorID]; ok {
			p.RepostAuthor = author.Username
		}
		p.RepostContent = original.Content
		original.Reposts++
	}

	s.postSeq++
	p.ID = s.postSeq
	if p.Pid == "" {
		p.Pid = utils.RandStringBytesMaskImpr(8)
	}
	p.Likes = 0
	p.Comments = 0
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *Store) GetPost(id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := s.decorate(*p)
	return &cp, nil
}

func (s *Store) GetPostByPid(pid string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Pid == pid {
			cp := s.decorate(*p)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// decorate attaches author, topic and tags to a post copy. Caller holds the
// lock.
func (s *Store) decorate(p models.Post) models.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = *u
	}
	if p.TopicID != nil {
		if t, ok := s.topics[*p.TopicID]; ok {
			cp := *t
			p.Topic = &cp
		}
	}
	p.Tags = nil
	for _, tagID := range s.postTags[p.ID] {
		if t, ok := s.tags[tagID]; ok {
			p.Tags = append(p.Tags, *t)
		}
	}
	return p
}

func (s *Store) ListPosts(opts store.ListPostsOptions) ([]models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Post
	for _, p := range s.posts {
		if p.ReplyToID != nil {
			continue // replies never surface in the top-level feed
		}
		if opts.TopicID != nil && (p.TopicID == nil || *p.TopicID != *opts.TopicID) {
			continue
		}
		result = append(result, s.decorate(*p))
	}

	switch opts.Tab {
	case store.TabPopular:
		sort.Slice(result, func(i, j int) bool {
			if result[i].Likes != result[j].Likes {
				return result[i].Likes > result[j].Likes
			}
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	default: // latest
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	total := int64(len(result))

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 20
	}
	offset := (page - 1) * perPage
	if offset >= len(result) {
		return []models.Post{}, total, nil
	}
	end := offset + perPage
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (s *Store) ListReplies(postID uint) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[postID]; !ok {
		return nil, store.ErrNotFound
	}
	var replies []models.Post
	for _, p := range s.posts {
		if p.ReplyToID != nil && *p.ReplyToID == postID {
			replies = append(replies, s.decorate(*p))
		}
	}
	sort.Slice(replies, func(i, j int) bool {
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

func (s *Store) EditPost(id uint, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Content = content
	p.UpdatedAt = time.Now()
	cp := s.decorate(*p)
	return &cp, nil
}

func (s *Store) DeletePost(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}

	// Collect the post and every transitive reply, then sweep their
	// comments and likes so nothing dangles.
	doomed := map[uint]bool{id: true}
	for {
		grew := false
		for _, p := range s.posts {
			if p.ReplyToID != nil && doomed[*p.ReplyToID] && !doomed[p.ID] {
				doomed[p.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	for cid, cm := range s.comments {
		if doomed[cm.PostID] {
			for lid, l := range s.likes {
				if l.CommentID != nil && *l.CommentID == cid {
					delete(s.likes, lid)
				}
			}
			delete(s.comments, cid)
		}
	}
	for lid, l := range s.likes {
		if l.PostID != nil && doomed[*l.PostID] {
			delete(s.likes, lid)
		}
	}
	for _, p := range s.posts {
		if p.RepostOfID != nil && doomed[*p.RepostOfID] {
			p.RepostOfID = nil // snapshot fields keep the repost renderable
		}
	}
	// A deleted repost no longer counts against its original.
	for pid := range doomed {
		p := s.posts[pid]
		if p.RepostOfID == nil || doomed[*p.RepostOfID] {
			continue
		}
		if original, ok := s.posts[*p.RepostOfID]; ok && original.Reposts > 0 {
			original.Reposts--
		}
	}
	for pid := range doomed {
		delete(s.postTags, pid)
		delete(s.posts, pid)
	}
	return nil
}

// ---- Likes ----

func (s *Store) LikePost(userID, postID uint) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return 0, false, store.ErrNotFound
	}
	if s.findPostLike(userID, postID) != nil {
		return p.Likes, false, nil // already liked, no-op
	}
	s.likeSeq++
	s.likes[s.likeSeq] = &models.Like{
		ID:        s.likeSeq,
		UserID:    userID,
		PostID:    &postID,
		CreatedAt: time.Now(),
	}
	p.Likes++
	return p.Likes, true, nil
}

func (s *Store) UnlikePost(userID, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return 0, store.ErrNotFound
	}
	l := s.findPostLike(userID, postID)
	if l == nil {
		return p.Likes, nil // nothing to remove
	}
	delete(s.likes, l.ID)
	if p.Likes > 0 {
		p.Likes--
	}
	return p.Likes, nil
}

func (s *Store) HasUserLikedPost(userID, postID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[postID]; !ok {
		return false, store.ErrNotFound
	}
	return s.findPostLike(userID, postID) != nil, nil
}

func (s *Store) findPostLike(userID, postID uint) *models.Like {
	for _, l := range s.likes {
		if l.UserID == userID && l.PostID != nil && *l.PostID == postID {
			return l
		}
	}
	return nil
}

func (s *Store) LikeComment(userID, commentID uint) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[commentID]
	if !ok {
		return 0, false, store.ErrNotFound
	}
	for _, l := range s.likes {
		if l.UserID == userID && l.CommentID != nil && *l.CommentID == commentID {
			return cm.Likes, false, nil
		}
	}
	s.likeSeq++
	s.likes[s.likeSeq] = &models.Like{
		ID:        s.likeSeq,
		UserID:    userID,
		CommentID: &commentID,
		CreatedAt: time.Now(),
	}
	cm.Likes++
	return cm.Likes, true, nil
}

func (s *Store) UnlikeComment(userID, commentID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[commentID]
	if !ok {
		return 0, store.ErrNotFound
	}
	for id, l := range s.likes {
		if l.UserID == userID && l.CommentID != nil && *l.CommentID == commentID {
			delete(s.likes, id)
			if cm.Likes > 0 {
				cm.Likes--
			}
			break
		}
	}
	return cm.Likes, nil
}

// ---- Comments ----

func (s *Store) CreateComment(cm *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[cm.PostID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.users[cm.AuthorID]; !ok {
		return store.ErrNotFound
	}
	s.commentSeq++
	cm.ID = s.commentSeq
	if cm.Cid == "" {
		cm.Cid = utils.RandStringBytesMaskImpr(8)
	}
	cm.Likes = 0
	cm.CreatedAt = time.Now()
	cp := *cm
	s.comments[cm.ID] = &cp
	p.Comments++
	return nil
}

func (s *Store) GetComment(id uint) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cm, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *cm
	if u, ok := s.users[cp.AuthorID]; ok {
		cp.Author = *u
	}
	return &cp, nil
}

func (s *Store) GetCommentByCid(cid string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cm := range s.comments {
		if cm.Cid == cid {
			cp := *cm
			if u, ok := s.users[cp.AuthorID]; ok {
				cp.Author = *u
			}
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListComments(postID uint) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[postID]; !ok {
		return nil, store.ErrNotFound
	}
	var result []models.Comment
	for _, cm := range s.comments {
		if cm.PostID == postID {
			cp := *cm
			if u, ok := s.users[cp.AuthorID]; ok {
				cp.Author = *u
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) EditComment(id uint, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	now := time.Now()
	cm.Content = content
	cm.EditedAt = &now
	cp := *cm
	return &cp, nil
}

func (s *Store) DeleteComment(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[id]
	if !ok {
		return store.ErrNotFound
	}
	for lid, l := range s.likes {
		if l.CommentID != nil && *l.CommentID == id {
			delete(s.likes, lid)
		}
	}
	if p, ok := s.posts[cm.PostID]; ok && p.Comments > 0 {
		p.Comments--
	}
	delete(s.comments, id)
	return nil
}

// ---- Topics ----

func (s *Store) CreateTopic(t *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topicSeq++
	t.ID = s.topicSeq
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.topics[t.ID] = &cp
	return nil
}

func (s *Store) ListTopics() ([]models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) GetTopic(id uint) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) AddInterest(userID, topicID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[topicID]
	if !ok {
		return store.ErrNotFound
	}
	for _, in := range s.interests {
		if in.UserID == userID && in.TopicID == topicID {
			return nil // already following
		}
	}
	s.interestSeq++
	s.interests[s.interestSeq] = &models.UserInterest{
		ID:        s.interestSeq,
		UserID:    userID,
		TopicID:   topicID,
		CreatedAt: time.Now(),
	}
	t.LearnerCount++
	return nil
}

func (s *Store) RemoveInterest(userID, topicID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[topicID]
	if !ok {
		return store.ErrNotFound
	}
	for id, in := range s.interests {
		if in.UserID == userID && in.TopicID == topicID {
			delete(s.interests, id)
			if t.LearnerCount > 0 {
				t.LearnerCount--
			}
			return nil
		}
	}
	return nil
}

func (s *Store) ListTrendingTopics(limit int) ([]models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TrendingScore != result[j].TrendingScore {
			return result[i].TrendingScore > result[j].TrendingScore
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) UpdateTopicTrending(topicID uint, score int, growth float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[topicID]
	if !ok {
		return store.ErrNotFound
	}
	t.TrendingScore = score
	t.GrowthPercent = growth
	t.UpdatedAt = time.Now()
	return nil
}

func (s *Store) GetTopicEngagement(topicID uint) (store.TopicEngagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.topics[topicID]; !ok {
		return store.TopicEngagement{}, store.ErrNotFound
	}
	var eng store.TopicEngagement
	topicPosts := make(map[uint]bool)
	for _, p := range s.posts {
		if p.TopicID != nil && *p.TopicID == topicID {
			eng.Posts++
			topicPosts[p.ID] = true
		}
	}
	for _, l := range s.likes {
		if l.PostID != nil && topicPosts[*l.PostID] {
			eng.Likes++
		}
	}
	for _, cm := range s.comments {
		if topicPosts[cm.PostID] {
			eng.Comments++
		}
	}
	for _, in := range s.interests {
		if in.TopicID == topicID {
			eng.Followers++
		}
	}
	return eng, nil
}

func (s *Store) ListTopicIDs() ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint, 0, len(s.topics))
	for id := range s.topics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ---- Tags ----

func (s *Store) TagPost(postID uint, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return store.ErrNotFound
	}
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		var tagID uint
		for id, t := range s.tags {
			if t.Name == name {
				tagID = id
				break
			}
		}
		if tagID == 0 {
			s.tagSeq++
			tagID = s.tagSeq
			s.tags[tagID] = &models.Tag{ID: tagID, Name: name, CreatedAt: time.Now()}
		}
		already := false
		for _, existing := range s.postTags[postID] {
			if existing == tagID {
				already = true
				break
			}
		}
		if !already {
			s.postTags[postID] = append(s.postTags[postID], tagID)
		}
	}
	return nil
}

// ---- Courses ----

func (s *Store) CreateCourse(c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseSeq++
	c.ID = s.courseSeq
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.courses[c.ID] = &cp
	return nil
}

func (s *Store) ListCourses(category string) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Course
	for _, c := range s.courses {
		if category != "" && c.Category != category {
			continue
		}
		cp := *c
		if u, ok := s.users[cp.InstructorID]; ok {
			cp.Instructor = *u
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) GetCourse(id uint) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	if u, ok := s.users[cp.InstructorID]; ok {
		cp.Instructor = *u
	}
	return &cp, nil
}

func (s *Store) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[courseID]; !ok {
		return nil, store.ErrNotFound
	}
	for _, e := range s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return nil, store.ErrConflict
		}
	}
	s.enrollSeq++
	e := &models.Enrollment{
		ID:             s.enrollSeq,
		UserID:         userID,
		CourseID:       courseID,
		LastActivityAt: time.Now(),
		CreatedAt:      time.Now(),
	}
	s.enrollments[e.ID] = e
	cp := *e
	return &cp, nil
}

func (s *Store) UpdateProgress(userID, courseID uint, lessonsCompleted int) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[courseID]
	if !ok {
		return nil, store.ErrNotFound
	}
	for _, e := range s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
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
			cp := *e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListEnrollments(userID uint) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Enrollment
	for _, e := range s.enrollments {
		if e.UserID == userID {
			cp := *e
			if c, ok := s.courses[e.CourseID]; ok {
				cp.Course = *c
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastActivityAt.After(result[j].LastActivityAt)
	})
	return result, nil
}

// ---- Points ----

func (s *Store) AddPoints(userID uint, amount int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	s.pointSeq++
	s.pointLogs = append(s.pointLogs, models.PointLog{
		ID:        s.pointSeq,
		UserID:    userID,
		Amount:    amount,
		Action:    action,
		CreatedAt: time.Now(),
	})
	u.Points += amount
	return nil
}

func (s *Store) CountPointLogsToday(userID uint, action string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	for _, pl := range s.pointLogs {
		if pl.UserID == userID && pl.Action == action && !pl.CreatedAt.Before(start) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListPointLogs(userID uint, limit int) ([]models.PointLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.PointLog
	for i := len(s.pointLogs) - 1; i >= 0; i-- {
		if s.pointLogs[i].UserID == userID {
			result = append(result, s.pointLogs[i])
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// ---- Notifications ----

func (s *Store) CreateNotification(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[n.UserID]; !ok {
		return store.ErrNotFound
	}
	s.notifSeq++
	n.ID = s.notifSeq
	n.CreatedAt = time.Now()
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *Store) ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			cp := *n
			if cp.ActorID != nil {
				if u, ok := s.users[*cp.ActorID]; ok {
					cp.Actor = *u
				}
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CountUnreadNotifications(userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkNotificationRead(userID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return store.ErrNotFound
	}
	n.IsRead = true
	return nil
}

// ---- Generated AI content ----

func (s *Store) SaveGeneratedContent(gc *models.GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genSeq++
	gc.ID = s.genSeq
	gc.CreatedAt = time.Now()
	s.generated = append(s.generated, *gc)
	return nil
}

func (s *Store) ListGeneratedContent(topicID *uint, limit int) ([]models.GeneratedContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.GeneratedContent
	for i := len(s.generated) - 1; i >= 0; i-- {
		gc := s.generated[i]
		if topicID != nil && (gc.TopicID == nil || *gc.TopicID != *topicID) {
			continue
		}
		result = append(result, gc)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
