package meeting

import (
	"fmt"
	"time"

	"github.com/example/meeting-planner/internal/recurrence"
)

const (
	// DateTimeLayout is the stored form of a DateTime, d/M/yy HHmm.
	DateTimeLayout = "2/1/06 1504"
	// DateTimeConstraints describes a valid stored date-time.
	DateTimeConstraints = "Date and time should be in the form d/M/yy HHmm, e.g. 15/3/24 1430"

	displayLayout = "Jan 2 2006 1504"
)

// DateTime is a wall-clock date and time with minute precision. It carries no
// time zone: two DateTimes are equal when their calendar fields are equal.
type DateTime struct {
	value time.Time
	valid bool
}

// NewDateTime captures the wall-clock fields of t in t's own location,
// dropping seconds and below.
func NewDateTime(t time.Time) DateTime {
	return DateTime{value: wallClock(t).Truncate(time.Minute), valid: true}
}

// ParseDateTime reads the stored d/M/yy HHmm form. Two-digit years map to
// 2000-2099.
func ParseDateTime(raw string) (DateTime, error) {
	parsed, err := time.Parse(DateTimeLayout, raw)
	if err != nil {
		return DateTime{}, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, DateTimeConstraints, err)
	}
	if parsed.Year() < 2000 {
		parsed = parsed.AddDate(100, 0, 0)
	}
	return DateTime{value: parsed, valid: true}, nil
}

// IsValidDateTime reports whether raw parses as a stored date-time.
func IsValidDateTime(raw string) bool {
	_, err := ParseDateTime(raw)
	return err == nil
}

// Time returns the wall-clock value expressed in UTC.
func (d DateTime) Time() time.Time { return d.value }

// In returns the wall-clock value interpreted in loc.
func (d DateTime) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	v := d.value
	return time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), 0, 0, loc)
}

// IsZero reports whether the date-time is absent.
func (d DateTime) IsZero() bool { return !d.valid }

// Format renders the stored d/M/yy HHmm form.
func (d DateTime) Format() string { return d.value.Format(DateTimeLayout) }

// String renders the date-time for display.
func (d DateTime) String() string { return d.value.Format(displayLayout) }

// Equal reports whether both date-times denote the same wall-clock minute.
func (d DateTime) Equal(other DateTime) bool {
	return d.valid == other.valid && d.value.Equal(other.value)
}

// Before reports whether d is earlier than other.
func (d DateTime) Before(other DateTime) bool { return d.value.Before(other.value) }

// After reports whether d is later than other.
func (d DateTime) After(other DateTime) bool { return d.value.After(other.value) }

// AfterInstant reports whether d is later than the wall-clock reading of t.
func (d DateTime) AfterInstant(t time.Time) bool { return d.value.After(wallClock(t)) }

// Until returns the time from the wall-clock reading of t to d.
func (d DateTime) Until(t time.Time) time.Duration { return d.value.Sub(wallClock(t)) }

// Add returns the date-time shifted by length.
func (d DateTime) Add(length time.Duration) DateTime {
	return DateTime{value: d.value.Add(length).Truncate(time.Minute), valid: d.valid}
}

// NextOccurrence returns the start of the index-th occurrence of rec counted
// from d. Index zero yields d.
func (d DateTime) NextOccurrence(rec recurrence.Recurrence, index int) DateTime {
	return DateTime{value: rec.Next(d.value, index), valid: d.valid}
}

// Copy returns a value-equal date-time.
func (d DateTime) Copy() DateTime { return DateTime{value: d.value, valid: d.valid} }

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
