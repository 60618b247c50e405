package utils

import (
	"testing"
	"time"
)

func TestTrendingScoreZeroEngagement(t *testing.T) {
	score := TrendingScore(time.Now(), 0, 0, 0, 0)
	if score != 0 {
		t.Errorf("score with zero engagement = %f, want 0", score)
	}
}

func TestTrendingScoreDecaysWithAge(t *testing.T) {
	fresh := TrendingScore(time.Now(), 10, 50, 20, 5)
	stale := TrendingScore(time.Now().Add(-48*time.Hour), 10, 50, 20, 5)
	if fresh <= stale {
		t.Errorf("fresh score %f not above stale score %f", fresh, stale)
	}
	if stale <= 0 {
		t.Errorf("stale score %f should stay positive with engagement", stale)
	}
}

func TestTrendingScoreRewardsEngagement(t *testing.T) {
	now := time.Now()
	quiet := TrendingScore(now, 1, 2, 1, 0)
	busy := TrendingScore(now, 20, 200, 80, 30)
	if busy <= quiet {
		t.Errorf("busy topic score %f not above quiet topic %f", busy, quiet)
	}
}

func TestTrendingScoreFollowerWeight(t *testing.T) {
	now := time.Now()
	// Followers carry the heaviest weight, so swapping likes for the same
	// number of followers must raise the score.
	likesOnly := TrendingScore(now, 0, 10, 0, 0)
	followersOnly := TrendingScore(now, 0, 0, 0, 10)
	if followersOnly <= likesOnly {
		t.Errorf("follower score %f not above like score %f", followersOnly, likesOnly)
	}
}
