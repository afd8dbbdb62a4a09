package meeting

import (
	"strings"
	"time"
)

// WithinHours returns a filter accepting meetings that have not started
// before now and start within the given number of whole hours.
func WithinHours(hours int, now time.Time) func(*Meeting) bool {
	return func(m *Meeting) bool {
		until := m.dateTime.Until(now)
		if until < 0 {
			return false
		}
		return int64(until/time.Hour) <= int64(hours)
	}
}

// Chronological orders meetings by date-time, then title. It is suitable for
// slices.SortFunc.
func Chronological(a, b *Meeting) int {
	if c := a.dateTime.value.Compare(b.dateTime.value); c != 0 {
		return c
	}
	return strings.Compare(a.title.value, b.title.value)
}
