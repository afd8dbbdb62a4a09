package index

import (
	"errors"
	"testing"
)

func TestIndexConversions(t *testing.T) {
	t.Parallel()

	idx := FromZeroBased(2)
	if idx.ZeroBased() != 2 || idx.OneBased() != 3 {
		t.Fatalf("unexpected positions: %d/%d", idx.ZeroBased(), idx.OneBased())
	}
	if FromOneBased(3) != idx {
		t.Fatalf("expected one-based 3 to equal zero-based 2")
	}
	if idx.String() != "3" {
		t.Fatalf("unexpected string %q", idx.String())
	}
}

func TestIndexPanicsOnNegative(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for negative position")
		}
	}()
	FromZeroBased(-1)
}

func TestParse(t *testing.T) {
	t.Parallel()

	idx, err := Parse(" 4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.ZeroBased() != 3 {
		t.Fatalf("expected zero-based 3, got %d", idx.ZeroBased())
	}

	for _, raw := range []string{"0", "-2", "abc", ""} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("Parse(%q): expected ErrInvalidIndex, got %v", raw, err)
		}
	}
}
