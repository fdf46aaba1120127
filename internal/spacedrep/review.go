package spacedrep

import "time"

// IsDue reports whether a question scheduled for next is due on the calendar
// date of now. An unset or unparseable date is always due, so a damaged
// record never blocks practice.
func IsDue(next Date, now time.Time) bool {
	if next.IsZero() {
		return true
	}
	nt, err := next.Time()
	if err != nil {
		return true
	}
	return !midnight(now).Before(nt)
}

// DaysUntil returns the number of whole days until next is due.
// Returns 0 if it is already due.
func DaysUntil(next Date, now time.Time) int {
	if IsDue(next, now) {
		return 0
	}
	nt, _ := next.Time()
	return int(nt.Sub(midnight(now)).Hours() / 24)
}

// OverdueDays returns how many days past next the calendar date of now is.
// Returns 0 if not yet due or if next is unset or unreadable.
func OverdueDays(next Date, now time.Time) int {
	nt, err := next.Time()
	if err != nil {
		return 0
	}
	today := midnight(now)
	if today.Before(nt) {
		return 0
	}
	return int(today.Sub(nt).Hours() / 24)
}
