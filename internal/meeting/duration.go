package meeting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxMinutes is the largest minutes component of a Duration.
const MaxMinutes = 59

// DurationConstraints describes a valid duration.
var DurationConstraints = fmt.Sprintf("Number of minutes should not be more than %d", MaxMinutes)

// Duration is the length of a meeting in hours and minutes.
type Duration struct {
	hours   uint64
	minutes uint64
	valid   bool
}

// NewDuration validates and constructs a Duration. Hours are not bounded.
func NewDuration(hours, minutes uint64) (Duration, error) {
	if !IsValidDuration(hours, minutes) {
		return Duration{}, fmt.Errorf("%w: %s", ErrInvalidArgument, DurationConstraints)
	}
	return Duration{hours: hours, minutes: minutes, valid: true}, nil
}

// ParseDuration reads the "<hours> <minutes>" form used in stored data.
func ParseDuration(raw string) (Duration, error) {
	hours, minutes, err := SplitDuration(raw)
	if err != nil {
		return Duration{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return NewDuration(hours, minutes)
}

// IsValidDuration reports whether hours and minutes form a valid duration.
func IsValidDuration(hours, minutes uint64) bool {
	return minutes <= MaxMinutes
}

// SplitDuration parses the stored "<hours> <minutes>" form without applying
// the duration constraint.
func SplitDuration(raw string) (uint64, uint64, error) {
	parts := strings.Split(raw, " ")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("duration %q is not in the form \"<hours> <minutes>\"", raw)
	}
	hours, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("duration hours %q: %w", parts[0], err)
	}
	minutes, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("duration minutes %q: %w", parts[1], err)
	}
	return hours, minutes, nil
}

// Hours returns the hours component.
func (d Duration) Hours() uint64 { return d.hours }

// Minutes returns the minutes component.
func (d Duration) Minutes() uint64 { return d.minutes }

// IsZero reports whether the duration is absent. A constructed 0h0m duration
// is not absent.
func (d Duration) IsZero() bool { return !d.valid }

// Std converts the duration to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.hours)*time.Hour + time.Duration(d.minutes)*time.Minute
}

// Equal reports whether both durations have the same hours and minutes.
func (d Duration) Equal(other Duration) bool {
	return d.hours == other.hours && d.minutes == other.minutes && d.valid == other.valid
}

// Copy returns a value-equal duration.
func (d Duration) Copy() Duration {
	return Duration{hours: d.hours, minutes: d.minutes, valid: d.valid}
}

// String renders the duration for display, e.g. "1hrs 30mins". A zero hours
// component is omitted but the separating space before the minutes is kept.
func (d Duration) String() string {
	var out string
	if d.hours != 0 {
		out = strconv.FormatUint(d.hours, 10) + "hrs"
	}
	if d.minutes == 0 {
		return out
	}
	return out + " " + strconv.FormatUint(d.minutes, 10) + "mins"
}
