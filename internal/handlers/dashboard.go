package handlers

import (
	"net/http"

	"luminate/internal/store"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	store store.Store
}

func NewDashboardHandler(st store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// Overview aggregates what the dashboard page renders: points balance with
// recent ledger entries, course progress, unread notification count.
func (h *DashboardHandler) Overview(c *gin.Context) {
	user := MustUser(c)

	enrollments, err := h.store.ListEnrollments(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}

	pointLogs, err := h.store.ListPointLogs(user.ID, 20)
	if err != nil {
		StoreError(c, err)
		return
	}

	unread, err := h.store.CountUnreadNotifications(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"points":      user.Points,
		"point_logs":  pointLogs,
		"enrollments": enrollments,
		"unread":      unread,
	})
}
