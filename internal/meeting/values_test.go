package meeting

import (
	"errors"
	"testing"
	"time"
)

func TestTitleAndLocationValidation(t *testing.T) {
	t.Parallel()

	valid := []string{"Standup", "a", "Room 4.02", "Café"}
	for _, raw := range valid {
		if _, err := NewTitle(raw); err != nil {
			t.Fatalf("NewTitle(%q) returned error: %v", raw, err)
		}
		if _, err := NewLocation(raw); err != nil {
			t.Fatalf("NewLocation(%q) returned error: %v", raw, err)
		}
	}

	invalid := []string{"", " leading", "\tTab"}
	for _, raw := range invalid {
		if _, err := NewTitle(raw); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("NewTitle(%q): expected ErrInvalidArgument, got %v", raw, err)
		}
		if IsValidLocation(raw) {
			t.Fatalf("IsValidLocation(%q) = true", raw)
		}
	}

	a, _ := NewTitle("Review")
	b, _ := NewTitle("Review")
	if !a.Equal(b) || !a.Copy().Equal(a) {
		t.Fatalf("expected titles to be equal by value")
	}
	if (Location{}).Equal(mustLocation(t, "HQ")) {
		t.Fatalf("absent location must not equal a present one")
	}
	if !(Location{}).Equal(Location{}) {
		t.Fatalf("absent locations must be equal")
	}
}

func TestDuration(t *testing.T) {
	t.Parallel()

	t.Run("rejects more than 59 minutes", func(t *testing.T) {
		t.Parallel()

		if _, err := NewDuration(1, 60); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := ParseDuration("5 70"); err == nil || !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if IsValidDuration(0, 60) || !IsValidDuration(100, 59) {
			t.Fatalf("unexpected IsValidDuration result")
		}
	})

	t.Run("string form agrees with numeric form", func(t *testing.T) {
		t.Parallel()

		parsed, err := ParseDuration("1 30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		built, _ := NewDuration(1, 30)
		if !parsed.Equal(built) {
			t.Fatalf("expected %v to equal %v", parsed, built)
		}
		if parsed.Std() != 90*time.Minute {
			t.Fatalf("unexpected std duration %v", parsed.Std())
		}
	})

	t.Run("malformed string", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "90", "one 30", "1 x"} {
			if _, err := ParseDuration(raw); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("ParseDuration(%q): expected ErrInvalidArgument, got %v", raw, err)
			}
		}
	})

	t.Run("display", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			hours, minutes uint64
			want           string
		}{
			{2, 0, "2hrs"},
			{0, 5, " 5mins"},
			{0, 0, ""},
			{1, 30, "1hrs 30mins"},
		}
		for _, tc := range cases {
			d, err := NewDuration(tc.hours, tc.minutes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := d.String(); got != tc.want {
				t.Fatalf("Duration(%d, %d).String() = %q, want %q", tc.hours, tc.minutes, got, tc.want)
			}
		}
	})

	t.Run("zero length is present", func(t *testing.T) {
		t.Parallel()

		d, _ := NewDuration(0, 0)
		if d.IsZero() {
			t.Fatalf("constructed duration must not be absent")
		}
		if !(Duration{}).IsZero() {
			t.Fatalf("zero value must be absent")
		}
	})
}

func TestDateTime(t *testing.T) {
	t.Parallel()

	t.Run("parse and format round trip", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"15/3/24 1430", "1/1/00 0000", "31/12/99 2359"} {
			dt, err := ParseDateTime(raw)
			if err != nil {
				t.Fatalf("ParseDateTime(%q) returned error: %v", raw, err)
			}
			if got := dt.Format(); got != raw {
				t.Fatalf("Format() = %q, want %q", got, raw)
			}
		}
	})

	t.Run("two digit years land in this century", func(t *testing.T) {
		t.Parallel()

		dt, err := ParseDateTime("15/3/75 0900")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dt.Time().Year() != 2075 {
			t.Fatalf("expected 2075, got %d", dt.Time().Year())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "2024-03-15 14:30", "32/1/24 1000", "15/3/24 2460"} {
			if IsValidDateTime(raw) {
				t.Fatalf("IsValidDateTime(%q) = true", raw)
			}
		}
	})

	t.Run("wall clock ignores location", func(t *testing.T) {
		t.Parallel()

		tokyo := time.FixedZone("JST", 9*60*60)
		a := NewDateTime(time.Date(2024, time.March, 15, 14, 30, 45, 0, tokyo))
		b := NewDateTime(time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC))
		if !a.Equal(b) {
			t.Fatalf("expected %v to equal %v", a, b)
		}
		if got := a.In(tokyo); got.Hour() != 14 || got.Location() != tokyo {
			t.Fatalf("unexpected In result %v", got)
		}
	})

	t.Run("occurrences", func(t *testing.T) {
		t.Parallel()

		dt, _ := ParseDateTime("31/1/24 0900")
		if got := dt.NextOccurrence(0, 3); !got.Equal(dt) {
			t.Fatalf("unspecified recurrence must not move the date-time")
		}
		if got := dt.Add(90 * time.Minute).Format(); got != "31/1/24 1030" {
			t.Fatalf("unexpected Add result %q", got)
		}
	})
}

func mustLocation(t *testing.T, raw string) Location {
	t.Helper()
	loc, err := NewLocation(raw)
	if err != nil {
		t.Fatalf("NewLocation(%q) returned error: %v", raw, err)
	}
	return loc
}
