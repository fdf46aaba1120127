package mastery

import "math"

const (
	// CorrectThreshold is the minimum score (0-10) that counts as correct.
	CorrectThreshold = 7.0

	// MinConfidence and MaxConfidence bound the self-reported confidence scale.
	MinConfidence = 1
	MaxConfidence = 3

	// DefaultConfidence ("partial") is used when the learner was not asked.
	DefaultConfidence = 2

	// MasteredLevel is the lowest level that counts as mastered in topic stats.
	MasteredLevel = 3

	successWeight    = 0.6
	confidenceWeight = 0.4
)

// Level names, indexed by mastery level.
var levelNames = [...]string{"New", "Learning", "Reviewing", "Confident", "Mastered", "Expert"}

// threshold is one rung of the level ladder. minAttempts keeps a single
// lucky answer from reaching the top levels.
type threshold struct {
	level       int
	minCombined float64
	minAttempts int
}

// ladder is evaluated top down; the first rung that matches wins.
var ladder = []threshold{
	{level: 5, minCombined: 0.9, minAttempts: 3},
	{level: 4, minCombined: 0.8, minAttempts: 2},
	{level: 3, minCombined: 0.7},
	{level: 2, minCombined: 0.5},
	{level: 1, minCombined: 0.3},
}

// ComputeLevel derives the mastery level (0-5) from the record's attempt
// counters and average confidence. It ignores the cached level.
func ComputeLevel(r Record) int {
	return computeLevel(r.attempts, r.correctCount, r.avgConfidence)
}

func computeLevel(attempts, correct int, avgConfidence float64) int {
	if attempts <= 0 {
		return 0
	}
	c := combinedScore(attempts, correct, avgConfidence)
	for _, rung := range ladder {
		if c >= rung.minCombined && attempts >= rung.minAttempts {
			return rung.level
		}
	}
	return 0
}

// combinedScore blends success rate and normalized confidence into [0,1].
// The result is rounded to nine decimals so that inputs landing exactly on a
// threshold (0.6 + 0.3, say) are not pushed below it by float error.
func combinedScore(attempts, correct int, avgConfidence float64) float64 {
	success := float64(correct) / float64(attempts)
	confidence := avgConfidence / MaxConfidence
	c := successWeight*success + confidenceWeight*confidence
	return math.Round(c*1e9) / 1e9
}

// LevelName returns a display name for a mastery level.
func LevelName(level int) string {
	if level < 0 || level >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[level]
}
