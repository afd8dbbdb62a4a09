package meeting

import "errors"

var (
	// ErrInvalidArgument is returned when a value fails its constraints.
	ErrInvalidArgument = errors.New("meeting: invalid argument")
	// ErrMissingField is returned when a required meeting field is absent.
	ErrMissingField = errors.New("meeting: missing field")
)
