package testfixtures

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/meeting"
)

var fixtureNamespace = uuid.MustParse("5b1f6c2e-3d1a-4c9e-9a57-2f0c8f5e7d10")

// IDGenerator produces deterministic participant identifiers for tests. The
// same prefix and position always yield the same UUID.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator constructs a generator seeded with the given prefix. When
// prefix is empty, "person" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "person"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s-%d", g.prefix, g.counter)))
}

// NextPerson returns the next identifier as a meeting.Person.
func (g *IDGenerator) NextPerson() meeting.PersonID {
	return meeting.PersonID(g.Next())
}

// Take returns the next n identifiers.
func (g *IDGenerator) Take(n int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, g.Next())
	}
	return ids
}

// SetCounter overrides the internal counter, enabling deterministic resets.
func (g *IDGenerator) SetCounter(counter uint64) {
	g.mu.Lock()
	g.counter = counter
	g.mu.Unlock()
}
