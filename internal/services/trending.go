package services

import (
	"log"
	"math"
	"sync"
	"time"

	"luminate/internal/store"
	"luminate/internal/utils"
)

// TrendingService recomputes topic trending scores off the request path.
// Writes that touch a topic (posts, likes, comments, follows) schedule an
// update; a background worker batches and deduplicates them.
type TrendingService struct {
	store   store.Store
	queue   chan uint // topic ids awaiting recompute
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	trendingService *TrendingService
	trendingOnce    sync.Once
)

// InitTrendingService creates the singleton worker bound to st and starts
// its background goroutine.
func InitTrendingService(st store.Store) *TrendingService {
	trendingOnce.Do(func() {
		trendingService = &TrendingService{
			store:   st,
			queue:   make(chan uint, 1000),
			pending: make(map[uint]bool),
		}
		go trendingService.worker()
	})
	return trendingService
}

// GetTrendingService returns the singleton; InitTrendingService must have
// run first.
func GetTrendingService() *TrendingService {
	return trendingService
}

// ScheduleUpdate queues a topic for recompute, deduplicating topics already
// waiting.
func (s *TrendingService) ScheduleUpdate(topicID uint) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.pending[topicID] {
		s.mu.Unlock()
		return
	}
	s.pending[topicID] = true
	s.mu.Unlock()

	select {
	case s.queue <- topicID:
	default:
		// Queue full, drop and clear the pending mark.
		s.mu.Lock()
		delete(s.pending, topicID)
		s.mu.Unlock()
		log.Printf("trending queue full, skipping topic %d", topicID)
	}
}

func (s *TrendingService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case topicID := <-s.queue:
			batch = append(batch, topicID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *TrendingService) processBatch(topicIDs []uint) {
	for _, topicID := range topicIDs {
		s.updateTopicScore(topicID)

		s.mu.Lock()
		delete(s.pending, topicID)
		s.mu.Unlock()
	}
}

func (s *TrendingService) updateTopicScore(topicID uint) {
	topic, err := s.store.GetTopic(topicID)
	if err != nil {
		log.Printf("trending update failed: topic %d not found", topicID)
		return
	}

	eng, err := s.store.GetTopicEngagement(topicID)
	if err != nil {
		log.Printf("trending update failed for topic %d: %v", topicID, err)
		return
	}

	newScore := utils.TrendingScore(topic.UpdatedAt, eng.Posts, eng.Likes, eng.Comments, eng.Followers)
	scoreInt := int(newScore)

	// Growth relative to the previous score, shown as the ticker percent.
	growth := 0.0
	if topic.TrendingScore > 0 {
		growth = (newScore - float64(topic.TrendingScore)) / float64(topic.TrendingScore) * 100
		growth = math.Round(growth*10) / 10
	}

	if err := s.store.UpdateTopicTrending(topicID, scoreInt, growth); err != nil {
		log.Printf("failed to store trending score for topic %d: %v", topicID, err)
	}
}

// UpdateTopicScoreSync recomputes one topic immediately, for flows that
// need the fresh score in the response.
func UpdateTopicScoreSync(topicID uint) {
	if trendingService != nil {
		trendingService.updateTopicScore(topicID)
	}
}

// StartScheduledRefresh recomputes every topic once a day at 03:00 so
// scores decay even for topics with no new activity.
func (s *TrendingService) StartScheduledRefresh() {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))

			log.Println("starting scheduled trending refresh")
			s.refreshAll()
			log.Println("scheduled trending refresh done")
		}
	}()
}

func (s *TrendingService) refreshAll() {
	ids, err := s.store.ListTopicIDs()
	if err != nil {
		log.Printf("trending refresh failed: %v", err)
		return
	}
	for _, id := range ids {
		s.updateTopicScore(id)
	}
	log.Printf("refreshed trending scores for %d topics", len(ids))
}
