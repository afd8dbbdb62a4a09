package testfixtures

import (
	"testing"

	"github.com/google/uuid"
)

func TestIDGeneratorIsDeterministic(t *testing.T) {
	first := NewIDGenerator("entity").Take(2)
	second := NewIDGenerator("entity").Take(2)

	if first[0] != second[0] || first[1] != second[1] {
		t.Fatalf("expected identical sequences, got %v and %v", first, second)
	}
	if first[0] == first[1] {
		t.Fatalf("expected distinct identifiers, got %v", first)
	}
	if first[0].Version() != 5 {
		t.Fatalf("expected name-based UUIDs, got version %d", first[0].Version())
	}
}

func TestIDGeneratorCanReset(t *testing.T) {
	gen := NewIDGenerator("resource")
	first := gen.Next()
	gen.SetCounter(0)

	if next := gen.Next(); next != first {
		t.Fatalf("expected %v after reset, got %v", first, next)
	}
	if uuid.UUID(gen.NextPerson()) == first {
		t.Fatalf("expected the sequence to advance")
	}
}
