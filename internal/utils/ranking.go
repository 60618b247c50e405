package utils

import (
	"math"
	"time"
)

type TrendConfig struct {
	Gravity        float64 // time gravity
	WeightFollower float64
	WeightComment  float64
	WeightLike     float64
	WeightPost     float64
	ScaleFactor    float64 // maps the score into a 0-100 "temperature" band
}

var DefaultTrendConfig = TrendConfig{
	Gravity:        1.5,
	WeightFollower: 3.0,
	WeightComment:  2.0,
	WeightLike:     1.0,
	WeightPost:     1.5,
	ScaleFactor:    100.0,
}

// TrendingScore turns a topic's raw engagement into a decayed score.
// Weighted engagement is log-smoothed so a single viral post cannot pin a
// topic to the top forever, then divided by a time-decay term anchored at
// the topic's most recent activity.
func TrendingScore(lastActivity time.Time, posts, likes, comments, followers int64) float64 {
	hours := time.Since(lastActivity).Hours()

	weightedSum := (float64(posts) * DefaultTrendConfig.WeightPost) +
		(float64(comments) * DefaultTrendConfig.WeightComment) +
		(float64(likes) * DefaultTrendConfig.WeightLike) +
		(float64(followers) * DefaultTrendConfig.WeightFollower)

	if weightedSum < 0 {
		weightedSum = 0
	}

	// log10(sum + 1) keeps zero engagement at exactly zero.
	logScore := math.Log10(weightedSum + 1)

	numerator := logScore * DefaultTrendConfig.ScaleFactor

	decay := math.Pow(hours+2, DefaultTrendConfig.Gravity)

	return numerator / decay
}
