package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a meeting with the same title and date-time is already stored.
	ErrDuplicate = errors.New("persistence: duplicate meeting")
	// ErrIllegalValue is matched by every *IllegalValueError.
	ErrIllegalValue = errors.New("persistence: illegal value")
	// ErrMissingLocation is returned when encoding a meeting that has no location.
	ErrMissingLocation = errors.New("persistence: meeting has no location")
)

const (
	// MissingFieldMessageFormat is the message for an absent required field.
	MissingFieldMessageFormat = "Meeting's %s field is missing!"
	// ParseErrorMessageFormat is the message for a field that could not be parsed.
	ParseErrorMessageFormat = "Meeting's %s was incorrectly saved in the data file"
	// DuplicateMeetingMessage is the message for a book holding the same meeting twice.
	DuplicateMeetingMessage = "Meetings list contains duplicate meeting(s)."
)

// IllegalValueError reports a stored field that failed validation while
// decoding. Message is suitable for end users.
type IllegalValueError struct {
	Field   string
	Message string
}

func (e *IllegalValueError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrIllegalValue).
func (e *IllegalValueError) Unwrap() error {
	return ErrIllegalValue
}

func missingField(field string) *IllegalValueError {
	return &IllegalValueError{Field: field, Message: fmt.Sprintf(MissingFieldMessageFormat, field)}
}

func parseError(field string) *IllegalValueError {
	return &IllegalValueError{Field: field, Message: fmt.Sprintf(ParseErrorMessageFormat, field)}
}

func constraintViolation(field, message string) *IllegalValueError {
	return &IllegalValueError{Field: field, Message: message}
}
