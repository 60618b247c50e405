package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"luminate/internal/models"
	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	store store.Store
}

func NewPostHandler(st store.Store) *PostHandler {
	return &PostHandler{store: st}
}

type createPostRequest struct {
	Content        string   `json:"content"`
	TopicID        *uint    `json:"topic_id"`
	ReplyTo        *uint    `json:"reply_to"`
	RepostID       *uint    `json:"repost_id"`
	AttachmentType string   `json:"attachment_type"`
	Attachment     string   `json:"attachment"`
	Tags           []string `json:"tags"`
}

func validAttachmentType(t string) bool {
	switch t {
	case "", models.AttachmentImage, models.AttachmentCode, models.AttachmentVideo:
		return true
	}
	return false
}

func feedCacheKey(tab string, topicID *uint) string {
	if topicID != nil {
		return fmt.Sprintf("feed:%s:topic:%d:page:1", tab, *topicID)
	}
	return fmt.Sprintf("feed:%s:page:1", tab)
}

// invalidateFeed drops the cached first feed pages after any write that
// changes what they render, including the per-post counters.
func invalidateFeed(topicID *uint) {
	cache := utils.GetCache()
	cache.Delete(feedCacheKey(store.TabPopular, nil))
	cache.Delete(feedCacheKey(store.TabLatest, nil))
	if topicID != nil {
		cache.Delete(feedCacheKey(store.TabPopular, topicID))
		cache.Delete(feedCacheKey(store.TabLatest, topicID))
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	user := MustUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	// A repost may carry no commentary of its own; anything else needs
	// content. The repost check runs first.
	if req.RepostID == nil && strings.TrimSpace(req.Content) == "" {
		BadRequest(c, "content is required")
		return
	}
	if !validAttachmentType(req.AttachmentType) {
		BadRequest(c, "unknown attachment type")
		return
	}
	if req.ReplyTo != nil && req.RepostID != nil {
		BadRequest(c, "a post cannot be both a reply and a repost")
		return
	}

	post := models.Post{
		AuthorID:       user.ID,
		TopicID:        req.TopicID,
		Content:        req.Content,
		AttachmentType: req.AttachmentType,
		Attachment:     req.Attachment,
		ReplyToID:      req.ReplyTo,
		RepostOfID:     req.RepostID,
	}
	if err := h.store.CreatePost(&post); err != nil {
		StoreError(c, err)
		return
	}

	if len(req.Tags) > 0 {
		if err := h.store.TagPost(post.ID, req.Tags); err != nil {
			StoreError(c, err)
			return
		}
	}

	// First few posts a day earn points.
	go func() {
		if services.CanEarnPostPoints(h.store, user.ID) {
			_ = services.AddPoints(h.store, user.ID, services.PointsPostCreate, services.ActionPostCreate)
		}
	}()

	if req.ReplyTo != nil {
		if parent, err := h.store.GetPost(*req.ReplyTo); err == nil {
			go services.NotifyReplied(h.store, parent, user)
		}
	}

	if post.TopicID != nil {
		services.GetTrendingService().ScheduleUpdate(*post.TopicID)
	}
	invalidateFeed(post.TopicID)

	created, err := h.store.GetPost(post.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PostHandler) List(c *gin.Context) {
	tab := c.Query("tab")
	if tab != store.TabPopular {
		tab = store.TabLatest
	}

	var topicID *uint
	if t := c.Query("topic"); t != "" {
		id, err := utils.ParseUint(t)
		if err != nil {
			BadRequest(c, "invalid topic id")
			return
		}
		topicID = &id
	}

	page := utils.StringToInt(c.Query("page"))
	if page < 1 {
		page = 1
	}

	// First pages are the hot path; cache them briefly.
	cacheKey := ""
	if page == 1 {
		cacheKey = feedCacheKey(tab, topicID)
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	posts, total, err := h.store.ListPosts(store.ListPostsOptions{
		Tab:     tab,
		TopicID: topicID,
		Page:    page,
		PerPage: 20,
	})
	if err != nil {
		StoreError(c, err)
		return
	}

	payload := gin.H{
		"posts":    posts,
		"total":    total,
		"page":     page,
		"per_page": 20,
	}
	if cacheKey != "" {
		utils.GetCache().Set(cacheKey, payload, 1*time.Minute)
	}
	c.JSON(http.StatusOK, payload)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	post, err := h.store.GetPost(id)
	if err != nil {
		StoreError(c, err)
		return
	}

	replies, err := h.store.ListReplies(id)
	if err != nil {
		StoreError(c, err)
		return
	}

	liked := false
	if user := CurrentUser(c); user != nil {
		liked, _ = h.store.HasUserLikedPost(user.ID, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
		"replies":      replies,
		"liked":        liked,
	})
}

type editPostRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) Edit(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	post, err := h.store.GetPost(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		Forbidden(c)
		return
	}
	if post.RepostOfID == nil && strings.TrimSpace(req.Content) == "" {
		BadRequest(c, "content is required")
		return
	}

	updated, err := h.store.EditPost(id, req.Content)
	if err != nil {
		StoreError(c, err)
		return
	}

	invalidateFeed(post.TopicID)
	c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	post, err := h.store.GetPost(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		Forbidden(c)
		return
	}

	if err := h.store.DeletePost(id); err != nil {
		StoreError(c, err)
		return
	}

	services.AddPointsAsync(h.store, user.ID, services.PointsPostDeleted, services.ActionPostDeleted)

	if post.TopicID != nil {
		services.GetTrendingService().ScheduleUpdate(*post.TopicID)
	}
	invalidateFeed(post.TopicID)

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	post, err := h.store.GetPost(id)
	if err != nil {
		StoreError(c, err)
		return
	}

	likes, added, err := h.store.LikePost(user.ID, id)
	if err != nil {
		StoreError(c, err)
		return
	}

	// A repeat like is a no-op all the way down: no notification, no
	// points, nothing to recompute.
	if added {
		go services.NotifyLiked(h.store, post.AuthorID, user, false)
		if post.TopicID != nil {
			services.GetTrendingService().ScheduleUpdate(*post.TopicID)
		}
		invalidateFeed(post.TopicID)
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *PostHandler) Unlike(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	post, err := h.store.GetPost(id)
	if err != nil {
		StoreError(c, err)
		return
	}

	likes, err := h.store.UnlikePost(user.ID, id)
	if err != nil {
		StoreError(c, err)
		return
	}

	if post.TopicID != nil {
		services.GetTrendingService().ScheduleUpdate(*post.TopicID)
	}
	invalidateFeed(post.TopicID)

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
