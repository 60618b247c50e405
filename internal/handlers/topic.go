package handlers

import (
	"net/http"

	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	store store.Store
}

func NewTopicHandler(st store.Store) *TopicHandler {
	return &TopicHandler{store: st}
}

func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.store.ListTopics()
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *TopicHandler) Follow(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid topic id")
		return
	}

	if err := h.store.AddInterest(user.ID, id); err != nil {
		StoreError(c, err)
		return
	}

	services.GetTrendingService().ScheduleUpdate(id)

	topic, err := h.store.GetTopic(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) Unfollow(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid topic id")
		return
	}

	if err := h.store.RemoveInterest(user.ID, id); err != nil {
		StoreError(c, err)
		return
	}

	services.GetTrendingService().ScheduleUpdate(id)

	topic, err := h.store.GetTopic(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}
