package handlers

import (
	"net/http"
	"time"

	"luminate/internal/store"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

type TrendingHandler struct {
	store store.Store
}

func NewTrendingHandler(st store.Store) *TrendingHandler {
	return &TrendingHandler{store: st}
}

func (h *TrendingHandler) Topics(c *gin.Context) {
	limit := utils.StringToInt(c.Query("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	topics, err := h.store.ListTrendingTopics(limit)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// tickerEntry is the compact shape the frontend ticker scrolls through.
type tickerEntry struct {
	ID            uint    `json:"id"`
	Symbol        string  `json:"symbol"`
	Title         string  `json:"title"`
	TrendingScore int     `json:"trending_score"`
	GrowthPercent float64 `json:"growth_percent"`
}

func (h *TrendingHandler) Ticker(c *gin.Context) {
	const cacheKey = "trending:ticker"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	topics, err := h.store.ListTrendingTopics(20)
	if err != nil {
		StoreError(c, err)
		return
	}

	entries := make([]tickerEntry, 0, len(topics))
	for _, t := range topics {
		entries = append(entries, tickerEntry{
			ID:            t.ID,
			Symbol:        t.Symbol,
			Title:         t.Title,
			TrendingScore: t.TrendingScore,
			GrowthPercent: t.GrowthPercent,
		})
	}

	payload := gin.H{"ticker": entries}
	utils.GetCache().Set(cacheKey, payload, 1*time.Minute)
	c.JSON(http.StatusOK, payload)
}
