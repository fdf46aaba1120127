package spacedrep

import "time"

// MaxLevel is the highest mastery level that has a review interval.
const MaxLevel = 5

// intervals maps a mastery level (index) to the number of days until the
// question should be reviewed again. Level 0 is due immediately.
var intervals = [MaxLevel + 1]int{0, 1, 3, 7, 14, 30}

// IntervalDays returns the review interval for a mastery level.
// Levels outside 0..MaxLevel get no delay.
func IntervalDays(level int) int {
	if level < 0 || level > MaxLevel {
		return 0
	}
	return intervals[level]
}

// NextReview returns the date a question at the given level becomes due,
// counted from lastReviewed. If lastReviewed is unset or unreadable the
// calendar date of now is used instead.
func NextReview(level int, lastReviewed Date, now time.Time) Date {
	next, err := lastReviewed.AddDays(IntervalDays(level))
	if err != nil {
		return DateOf(now.AddDate(0, 0, IntervalDays(level)))
	}
	return next
}
