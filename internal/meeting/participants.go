package meeting

import (
	"bytes"
	"iter"
	"slices"

	"github.com/google/uuid"
)

// Person is anything that carries a stable participant identifier.
type Person interface {
	UUID() uuid.UUID
}

// PersonID adapts a bare identifier to Person.
type PersonID uuid.UUID

// UUID returns the identifier.
func (p PersonID) UUID() uuid.UUID { return uuid.UUID(p) }

// Participants is a read-only view of a meeting's participant identifiers.
// It exposes no mutating operations; changes go through the owning Meeting.
type Participants struct {
	ids map[uuid.UUID]struct{}
}

// Len returns the number of participants.
func (p Participants) Len() int { return len(p.ids) }

// Contains reports whether id is a participant.
func (p Participants) Contains(id uuid.UUID) bool {
	_, ok := p.ids[id]
	return ok
}

// IDs returns a sorted snapshot of the identifiers. This ordering is the
// enumeration that positional participant deletion refers to.
func (p Participants) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.ids))
	for id := range p.ids {
		out = append(out, id)
	}
	slices.SortFunc(out, compareUUID)
	return out
}

// All iterates over the identifiers in IDs order.
func (p Participants) All() iter.Seq[uuid.UUID] {
	return func(yield func(uuid.UUID) bool) {
		for _, id := range p.IDs() {
			if !yield(id) {
				return
			}
		}
	}
}

// Equal reports whether both views hold the same identifiers.
func (p Participants) Equal(other Participants) bool {
	if len(p.ids) != len(other.ids) {
		return false
	}
	for id := range p.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func newParticipantSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func copyParticipantSet(src map[uuid.UUID]struct{}) map[uuid.UUID]struct{} {
	dst := make(map[uuid.UUID]struct{}, len(src))
	for id := range src {
		dst[id] = struct{}{}
	}
	return dst
}
