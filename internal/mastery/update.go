package mastery

import (
	"math"
	"time"

	"github.com/abhisek/mockmentor/internal/spacedrep"
)

// ScoreWindow is how many recent scores a record keeps.
const ScoreWindow = 10

// Update returns r with one more answer applied. score is on the 0-10 scale
// and confidence on the 1-3 scale; out-of-range values are clamped. now
// supplies the review date. The input record is not modified.
func Update(r Record, score float64, confidence int, now time.Time) Record {
	score = clampScore(score)
	confidence = clampConfidence(confidence)

	out := r
	out.attempts++
	if score >= CorrectThreshold {
		out.correctCount++
	}

	n := float64(out.attempts)
	out.avgConfidence = (r.avgConfidence*(n-1) + float64(confidence)) / n

	out.lastScore = score
	out.scores = appendWindow(r.scores, score, ScoreWindow)

	out.lastReviewed = spacedrep.DateOf(now)
	out.level = ComputeLevel(out)
	out.nextReview = spacedrep.NextReview(out.level, out.lastReviewed, now)
	return out
}

// appendWindow appends v to a copy of s and keeps only the last size values.
func appendWindow(s []float64, v float64, size int) []float64 {
	start := 0
	if len(s)+1 > size {
		start = len(s) + 1 - size
	}
	out := make([]float64, 0, len(s)+1-start)
	out = append(out, s[start:]...)
	return append(out, v)
}

func clampScore(s float64) float64 {
	switch {
	case math.IsNaN(s), s < 0:
		return 0
	case s > 10:
		return 10
	}
	return s
}

func clampConfidence(c int) int {
	switch {
	case c < MinConfidence:
		return MinConfidence
	case c > MaxConfidence:
		return MaxConfidence
	}
	return c
}
