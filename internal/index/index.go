// Package index models positional references into ordered listings.
package index

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIndex is returned when a textual index is not a positive integer.
var ErrInvalidIndex = errors.New("index: not a positive integer")

// Index is a position that can be expressed zero based or one based.
type Index struct {
	zeroBased int
}

// FromZeroBased returns the index for a zero-based position. It panics on a
// negative position.
func FromZeroBased(zeroBased int) Index {
	if zeroBased < 0 {
		panic(fmt.Sprintf("index: negative position %d", zeroBased))
	}
	return Index{zeroBased: zeroBased}
}

// FromOneBased returns the index for a one-based position. It panics when the
// position is below one.
func FromOneBased(oneBased int) Index {
	if oneBased < 1 {
		panic(fmt.Sprintf("index: one-based position %d is below one", oneBased))
	}
	return Index{zeroBased: oneBased - 1}
}

// Parse reads a one-based index as typed by a user.
func Parse(raw string) (Index, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return Index{}, fmt.Errorf("%w: %q", ErrInvalidIndex, raw)
	}
	return FromOneBased(value), nil
}

// ZeroBased returns the zero-based position.
func (i Index) ZeroBased() int {
	return i.zeroBased
}

// OneBased returns the one-based position.
func (i Index) OneBased() int {
	return i.zeroBased + 1
}

// String renders the one-based position.
func (i Index) String() string {
	return strconv.Itoa(i.OneBased())
}
