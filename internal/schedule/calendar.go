package schedule

import (
	"time"

	"github.com/tallybook/tally/internal/model"
)

// AddMonths moves t by n calendar months, clamping the day to the length of
// the target month: Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(d, last)-1)
}

// Advance returns the occurrence after t for freq. It reports false for an
// unknown frequency.
func Advance(t time.Time, freq model.Frequency) (time.Time, bool) {
	switch freq {
	case model.Daily:
		return t.AddDate(0, 0, 1), true
	case model.Weekly:
		return t.AddDate(0, 0, 7), true
	case model.Monthly:
		return AddMonths(t, 1), true
	case model.Yearly:
		return AddMonths(t, 12), true
	}
	return t, false
}
