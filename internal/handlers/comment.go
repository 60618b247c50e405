package handlers

import (
	"net/http"
	"strings"

	"luminate/internal/models"
	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store store.Store
}

func NewCommentHandler(st store.Store) *CommentHandler {
	return &CommentHandler{store: st}
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	comments, err := h.store.ListComments(postID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := MustUser(c)
	postID, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid post id")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		BadRequest(c, "content is required")
		return
	}

	post, err := h.store.GetPost(postID)
	if err != nil {
		StoreError(c, err)
		return
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  req.Content,
	}
	if err := h.store.CreateComment(&comment); err != nil {
		StoreError(c, err)
		return
	}

	go func() {
		if services.CanEarnCommentPoints(h.store, user.ID) {
			_ = services.AddPoints(h.store, user.ID, services.PointsCommentCreate, services.ActionCommentCreate)
		}
	}()
	go services.NotifyCommented(h.store, post, user)

	if post.TopicID != nil {
		services.GetTrendingService().ScheduleUpdate(*post.TopicID)
	}
	// The feed cards carry the comment counter.
	invalidateFeed(post.TopicID)

	created, err := h.store.GetComment(comment.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type editCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Edit(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid comment id")
		return
	}

	var req editCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		BadRequest(c, "content is required")
		return
	}

	comment, err := h.store.GetComment(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if comment.AuthorID != user.ID {
		Forbidden(c)
		return
	}

	updated, err := h.store.EditComment(id, req.Content)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CommentHandler) Like(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid comment id")
		return
	}

	comment, err := h.store.GetComment(id)
	if err != nil {
		StoreError(c, err)
		return
	}

	likes, added, err := h.store.LikeComment(user.ID, id)
	if err != nil {
		StoreError(c, err)
		return
	}

	// Repeat likes stay side-effect free.
	if added {
		go services.NotifyLiked(h.store, comment.AuthorID, user, true)
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *CommentHandler) Unlike(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid comment id")
		return
	}

	likes, err := h.store.UnlikeComment(user.ID, id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid comment id")
		return
	}

	comment, err := h.store.GetComment(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if comment.AuthorID != user.ID {
		Forbidden(c)
		return
	}

	if err := h.store.DeleteComment(id); err != nil {
		StoreError(c, err)
		return
	}

	services.AddPointsAsync(h.store, user.ID, services.PointsCommentDeleted, services.ActionCommentDeleted)

	if post, err := h.store.GetPost(comment.PostID); err == nil {
		invalidateFeed(post.TopicID)
	}

	c.Status(http.StatusNoContent)
}
