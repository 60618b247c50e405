package handlers

import (
	"net/http"
	"strings"

	"luminate/internal/models"
	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AIHandler struct {
	store store.Store
	llm   *services.LLMService
}

func NewAIHandler(st store.Store) *AIHandler {
	return &AIHandler{
		store: st,
		llm:   services.GetLLMService(),
	}
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	TopicID *uint  `json:"topic_id"`
}

// Generate asks the configured LLM for a mini-lesson and persists the
// result so the frontend can list past generations per topic.
func (h *AIHandler) Generate(c *gin.Context) {
	user := MustUser(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		BadRequest(c, "prompt is required")
		return
	}

	topicTitle := ""
	if req.TopicID != nil {
		topic, err := h.store.GetTopic(*req.TopicID)
		if err != nil {
			StoreError(c, err)
			return
		}
		topicTitle = topic.Title
	}

	body, err := h.llm.GenerateLesson(topicTitle, req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "content generation failed"})
		return
	}

	gc := models.GeneratedContent{
		RequestID: uuid.NewString(),
		UserID:    user.ID,
		TopicID:   req.TopicID,
		Prompt:    req.Prompt,
		Model:     "chat-completions",
		Body:      body,
	}
	if err := h.store.SaveGeneratedContent(&gc); err != nil {
		StoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": gc.RequestID,
		"body":       body,
		"body_html":  utils.RenderMarkdown(body),
	})
}

func (h *AIHandler) ListContent(c *gin.Context) {
	var topicID *uint
	if t := c.Query("topic"); t != "" {
		id, err := utils.ParseUint(t)
		if err != nil {
			BadRequest(c, "invalid topic id")
			return
		}
		topicID = &id
	}

	items, err := h.store.ListGeneratedContent(topicID, 20)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}
