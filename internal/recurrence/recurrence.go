package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Recurrence identifies how often a meeting repeats.
type Recurrence int

const (
	// Unspecified indicates the recurrence is not set.
	Unspecified Recurrence = iota
	// None marks a one-off meeting.
	None
	// Daily repeats every calendar day.
	Daily
	// Weekly repeats every seven days.
	Weekly
	// Monthly repeats on the same day of every month, clamped to the month's last day.
	Monthly
	// Yearly repeats on the same date every year, clamped for February 29.
	Yearly
)

// SeriesLength is the number of occurrences materialised for a periodic recurrence.
const SeriesLength = 5

// MessageConstraints describes the accepted textual forms of a recurrence.
const MessageConstraints = "Recurrence should be one of NONE, DAILY, WEEKLY, MONTHLY or YEARLY"

// ErrInvalidRecurrence is returned when a textual recurrence cannot be parsed.
var ErrInvalidRecurrence = errors.New("recurrence: invalid recurrence")

// ErrNotPeriodic is returned when a periodic rule is requested for a non-repeating recurrence.
var ErrNotPeriodic = errors.New("recurrence: recurrence is not periodic")

var names = map[Recurrence]string{
	None:    "NONE",
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
	Yearly:  "YEARLY",
}

// Values lists every concrete recurrence in declaration order.
func Values() []Recurrence {
	return []Recurrence{None, Daily, Weekly, Monthly, Yearly}
}

// String returns the persisted name of the recurrence.
func (r Recurrence) String() string {
	if name, ok := names[r]; ok {
		return name
	}
	return "UNSPECIFIED"
}

// IsValid reports whether raw names a concrete recurrence.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Parse converts a recurrence name into its variant. Matching ignores case and
// surrounding whitespace.
func Parse(raw string) (Recurrence, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, r := range Values() {
		if names[r] == normalized {
			return r, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: %q", ErrInvalidRecurrence, raw)
}

// IsPeriodic reports whether the recurrence produces more than one occurrence.
func (r Recurrence) IsPeriodic() bool {
	return r >= Daily && r <= Yearly
}

// Next returns the start of the occurrence index steps after base.
// Index zero yields base itself.
func (r Recurrence) Next(base time.Time, index int) time.Time {
	switch r {
	case Daily:
		return base.AddDate(0, 0, index)
	case Weekly:
		return base.AddDate(0, 0, 7*index)
	case Monthly:
		return addMonthsClamped(base, index)
	case Yearly:
		return addMonthsClamped(base, 12*index)
	default:
		return base
	}
}

// RRule builds an RFC 5545 rule describing count occurrences starting at dtstart.
func (r Recurrence) RRule(dtstart time.Time, count int) (*rrule.RRule, error) {
	freq, err := r.frequency()
	if err != nil {
		return nil, err
	}
	return rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: dtstart,
		Count:   count,
	})
}

// RRuleString renders the RRULE property value for count occurrences,
// e.g. "FREQ=WEEKLY;COUNT=5".
func (r Recurrence) RRuleString(count int) (string, error) {
	freq, err := r.frequency()
	if err != nil {
		return "", err
	}
	option := rrule.ROption{Freq: freq, Count: count}
	return option.RRuleString(), nil
}

// MayClamp reports whether expanding from base can hit a shorter month, where
// calendar clamping and RFC 5545 expansion disagree.
func (r Recurrence) MayClamp(base time.Time) bool {
	switch r {
	case Monthly:
		return base.Day() > 28
	case Yearly:
		return base.Month() == time.February && base.Day() == 29
	default:
		return false
	}
}

func (r Recurrence) frequency() (rrule.Frequency, error) {
	switch r {
	case Daily:
		return rrule.DAILY, nil
	case Weekly:
		return rrule.WEEKLY, nil
	case Monthly:
		return rrule.MONTHLY, nil
	case Yearly:
		return rrule.YEARLY, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotPeriodic, r)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
