package meeting

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	// TitleConstraints describes a valid meeting title.
	TitleConstraints = "Title should not be blank and should not start with whitespace"
	// LocationConstraints describes a valid meeting location.
	LocationConstraints = "Location should not be blank and should not start with whitespace"
)

// Title is the name of a meeting.
type Title struct {
	value string
}

// NewTitle validates raw and wraps it as a Title.
func NewTitle(raw string) (Title, error) {
	if !IsValidTitle(raw) {
		return Title{}, fmt.Errorf("%w: %s", ErrInvalidArgument, TitleConstraints)
	}
	return Title{value: raw}, nil
}

// IsValidTitle reports whether raw can be used as a title.
func IsValidTitle(raw string) bool {
	return isValidText(raw)
}

// String returns the title text.
func (t Title) String() string { return t.value }

// IsZero reports whether the title is absent.
func (t Title) IsZero() bool { return t.value == "" }

// Equal reports whether both titles hold the same text.
func (t Title) Equal(other Title) bool { return t.value == other.value }

// Copy returns a value-equal title.
func (t Title) Copy() Title { return Title{value: t.value} }

// Location is where a meeting takes place.
type Location struct {
	value string
}

// NewLocation validates raw and wraps it as a Location.
func NewLocation(raw string) (Location, error) {
	if !IsValidLocation(raw) {
		return Location{}, fmt.Errorf("%w: %s", ErrInvalidArgument, LocationConstraints)
	}
	return Location{value: raw}, nil
}

// IsValidLocation reports whether raw can be used as a location.
func IsValidLocation(raw string) bool {
	return isValidText(raw)
}

// String returns the location text.
func (l Location) String() string { return l.value }

// IsZero reports whether the location is absent.
func (l Location) IsZero() bool { return l.value == "" }

// Equal reports whether both locations hold the same text.
func (l Location) Equal(other Location) bool { return l.value == other.value }

// Copy returns a value-equal location.
func (l Location) Copy() Location { return Location{value: l.value} }

func isValidText(raw string) bool {
	first, size := utf8.DecodeRuneInString(raw)
	if size == 0 || first == utf8.RuneError {
		return false
	}
	return !unicode.IsSpace(first)
}
