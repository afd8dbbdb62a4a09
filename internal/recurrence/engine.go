package recurrence

import (
	"errors"
	"time"
)

const defaultMaxOccurrences = 1000

// GenerateOptions defines optional range bounds for occurrence generation.
type GenerateOptions struct {
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// Occurrence represents a generated instance of a recurring series.
type Occurrence struct {
	Index int
	Start time.Time
	End   time.Time
}

// Engine expands recurrences into occurrences.
type Engine struct {
	maxOccurrences int
}

// NewEngine constructs an Engine that returns at most maxOccurrences entries per
// windowed expansion. A non-positive value selects the default cap.
func NewEngine(maxOccurrences int) *Engine {
	if maxOccurrences <= 0 {
		maxOccurrences = defaultMaxOccurrences
	}
	return &Engine{maxOccurrences: maxOccurrences}
}

// ErrInvalidFrequency indicates the recurrence is not set.
var ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

// ErrInvalidWindow indicates the generation window is unbounded.
var ErrInvalidWindow = errors.New("recurrence: generation window requires an end bound")

// ErrInvalidDuration indicates the occurrence length is negative.
var ErrInvalidDuration = errors.New("recurrence: occurrence length must not be negative")

// Series produces the bounded occurrence series of a recurrence: a single
// occurrence for None, SeriesLength occurrences for periodic recurrences.
func (e *Engine) Series(rec Recurrence, baseStart time.Time, length time.Duration) ([]Occurrence, error) {
	if rec == Unspecified {
		return nil, ErrInvalidFrequency
	}
	if length < 0 {
		return nil, ErrInvalidDuration
	}

	count := 1
	if rec.IsPeriodic() {
		count = SeriesLength
	}

	occurrences := make([]Occurrence, 0, count)
	for i := 0; i < count; i++ {
		start := rec.Next(baseStart, i)
		occurrences = append(occurrences, Occurrence{Index: i, Start: start, End: start.Add(length)})
	}
	return occurrences, nil
}

// GenerateOccurrences produces occurrences touching the configured window,
// following the series indefinitely rather than stopping at SeriesLength.
//
// The engine enforces the following semantics:
//   - The window is inclusive on both ends and requires RangeEnd.
//   - An occurrence is included when [Start, End] intersects the window.
//   - At most the engine's cap of occurrences is returned.
func (e *Engine) GenerateOccurrences(rec Recurrence, baseStart time.Time, length time.Duration, opts GenerateOptions) ([]Occurrence, error) {
	if rec == Unspecified {
		return nil, ErrInvalidFrequency
	}
	if length < 0 {
		return nil, ErrInvalidDuration
	}
	if opts.RangeEnd == nil {
		return nil, ErrInvalidWindow
	}

	rangeEnd := *opts.RangeEnd
	var rangeStart time.Time
	if opts.RangeStart != nil {
		rangeStart = *opts.RangeStart
		if rangeStart.After(rangeEnd) {
			return nil, nil
		}
	}

	limit := e.maxOccurrences
	if limit <= 0 {
		limit = defaultMaxOccurrences
	}

	occurrences := make([]Occurrence, 0)
	for i := 0; len(occurrences) < limit; i++ {
		start := rec.Next(baseStart, i)
		if start.After(rangeEnd) {
			break
		}
		end := start.Add(length)
		if opts.RangeStart == nil || !end.Before(rangeStart) {
			occurrences = append(occurrences, Occurrence{Index: i, Start: start, End: end})
		}
		if !rec.IsPeriodic() {
			break
		}
	}

	return occurrences, nil
}
