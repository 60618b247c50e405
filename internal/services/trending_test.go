package services

import (
	"testing"

	"luminate/internal/models"
	"luminate/internal/store/memory"
)

func TestUpdateTopicScore(t *testing.T) {
	st := memory.New()

	u := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	if err := st.CreateUser(u); err != nil {
		t.Fatal(err)
	}
	topic := &models.Topic{Title: "Programming"}
	if err := st.CreateTopic(topic); err != nil {
		t.Fatal(err)
	}

	post := &models.Post{AuthorID: u.ID, TopicID: &topic.ID, Content: "hot take"}
	if err := st.CreatePost(post); err != nil {
		t.Fatal(err)
	}
	if err := st.AddInterest(u.ID, topic.ID); err != nil {
		t.Fatal(err)
	}

	// Bypass the singleton so the test owns its own instance.
	svc := &TrendingService{store: st, queue: make(chan uint, 10), pending: make(map[uint]bool)}
	svc.updateTopicScore(topic.ID)

	got, err := st.GetTopic(topic.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TrendingScore <= 0 {
		t.Errorf("trending score = %d after engagement, want > 0", got.TrendingScore)
	}
}

func TestUpdateTopicScoreMissingTopic(t *testing.T) {
	st := memory.New()
	svc := &TrendingService{store: st, queue: make(chan uint, 10), pending: make(map[uint]bool)}
	// Must not panic or write anything.
	svc.updateTopicScore(999)
}

func TestScheduleUpdateDeduplicates(t *testing.T) {
	st := memory.New()
	svc := &TrendingService{store: st, queue: make(chan uint, 10), pending: make(map[uint]bool)}

	svc.ScheduleUpdate(7)
	svc.ScheduleUpdate(7)
	svc.ScheduleUpdate(7)

	if len(svc.queue) != 1 {
		t.Errorf("queue holds %d entries, want 1 after dedup", len(svc.queue))
	}
}

func TestScheduleUpdateNilService(t *testing.T) {
	var svc *TrendingService
	// Handlers call through the singleton accessor; before init that is a
	// nil receiver and must be a no-op.
	svc.ScheduleUpdate(1)
}
