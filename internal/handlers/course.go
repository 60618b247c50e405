package handlers

import (
	"net/http"

	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	store store.Store
}

func NewCourseHandler(st store.Store) *CourseHandler {
	return &CourseHandler{store: st}
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.store.ListCourses(c.Query("category"))
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid course id")
		return
	}

	course, err := h.store.GetCourse(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid course id")
		return
	}

	enrollment, err := h.store.Enroll(user.ID, id)
	if err != nil {
		StoreError(c, err)
		return
	}

	services.AddPointsAsync(h.store, user.ID, services.PointsCourseEnroll, services.ActionCourseEnroll)

	c.JSON(http.StatusCreated, enrollment)
}

type progressRequest struct {
	LessonsCompleted int `json:"lessons_completed"`
}

func (h *CourseHandler) UpdateProgress(c *gin.Context) {
	user := MustUser(c)
	id, err := utils.ParseUint(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid course id")
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.LessonsCompleted < 0 {
		BadRequest(c, "lessons_completed must not be negative")
		return
	}

	before, err := h.store.ListEnrollments(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	prev := 0
	for _, e := range before {
		if e.CourseID == id {
			prev = e.LessonsCompleted
			break
		}
	}

	enrollment, err := h.store.UpdateProgress(user.ID, id, req.LessonsCompleted)
	if err != nil {
		StoreError(c, err)
		return
	}

	// Forward progress earns points, revisiting lessons does not.
	if enrollment.LessonsCompleted > prev {
		delta := (enrollment.LessonsCompleted - prev) * services.PointsLessonComplete
		services.AddPointsAsync(h.store, user.ID, delta, services.ActionLessonComplete)
	}

	c.JSON(http.StatusOK, enrollment)
}
