package handlers

import (
	"net/http"

	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	store store.Store
}

func NewNotificationHandler(st store.Store) *NotificationHandler {
	return &NotificationHandler{store: st}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := MustUser(c)

	notifications, err := h.store.ListNotifications(user.ID, 50)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid notification id")
		return
	}

	if err := h.store.MarkNotificationRead(user.ID, id); err != nil {
		StoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
