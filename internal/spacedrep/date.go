package spacedrep

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for persisted review dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day, stored as YYYY-MM-DD.
// The zero value means "unset".
type Date string

// dateLayouts are tried in order when parsing a persisted date. Older profiles
// may carry full timestamps; only their date part is used.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Time parses the date and returns midnight UTC of that calendar day.
func (d Date) Time() (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, string(d))
		if err == nil {
			return midnight(t), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", string(d), lastErr)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}

func (d Date) String() string {
	return string(d)
}

// midnight strips the time of day, keeping the calendar date as seen in t's
// location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
