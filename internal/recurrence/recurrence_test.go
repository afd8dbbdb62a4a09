package recurrence

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Recurrence
	}{
		{raw: "NONE", want: None},
		{raw: "daily", want: Daily},
		{raw: " Weekly ", want: Weekly},
		{raw: "MONTHLY", want: Monthly},
		{raw: "yearly", want: Yearly},
	}
	for _, tc := range cases {
		got, err := Parse(tc.raw)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		if !IsValid(tc.raw) {
			t.Fatalf("IsValid(%q) = false", tc.raw)
		}
	}

	for _, raw := range []string{"", "fortnightly", "UNSPECIFIED"} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidRecurrence) {
			t.Fatalf("Parse(%q): expected ErrInvalidRecurrence, got %v", raw, err)
		}
		if IsValid(raw) {
			t.Fatalf("IsValid(%q) = true", raw)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, r := range Values() {
		parsed, err := Parse(r.String())
		if err != nil || parsed != r {
			t.Fatalf("round trip of %v produced %v, %v", r, parsed, err)
		}
	}
	if Unspecified.String() != "UNSPECIFIED" {
		t.Fatalf("unexpected name for zero value: %q", Unspecified.String())
	}
}

func TestNext(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 31, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		rec   Recurrence
		index int
		want  time.Time
	}{
		{name: "none ignores index", rec: None, index: 3, want: base},
		{name: "daily", rec: Daily, index: 2, want: time.Date(2024, time.February, 2, 14, 30, 0, 0, time.UTC)},
		{name: "weekly", rec: Weekly, index: 1, want: time.Date(2024, time.February, 7, 14, 30, 0, 0, time.UTC)},
		{name: "monthly clamps to leap February", rec: Monthly, index: 1, want: time.Date(2024, time.February, 29, 14, 30, 0, 0, time.UTC)},
		{name: "monthly keeps day when it exists", rec: Monthly, index: 2, want: time.Date(2024, time.March, 31, 14, 30, 0, 0, time.UTC)},
		{name: "monthly clamps to thirty days", rec: Monthly, index: 3, want: time.Date(2024, time.April, 30, 14, 30, 0, 0, time.UTC)},
		{name: "monthly crosses year", rec: Monthly, index: 12, want: time.Date(2025, time.January, 31, 14, 30, 0, 0, time.UTC)},
		{name: "yearly", rec: Yearly, index: 2, want: time.Date(2026, time.January, 31, 14, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rec.Next(base, tc.index); !got.Equal(tc.want) {
				t.Fatalf("Next(%d) = %v, want %v", tc.index, got, tc.want)
			}
		})
	}

	leap := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)
	if got := Yearly.Next(leap, 1); !got.Equal(time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected yearly leap day to clamp, got %v", got)
	}
}

func TestRRuleMatchesNextForUnclampedDates(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	for _, r := range []Recurrence{Daily, Weekly, Monthly, Yearly} {
		rule, err := r.RRule(base, SeriesLength)
		if err != nil {
			t.Fatalf("RRule(%v) returned error: %v", r, err)
		}
		all := rule.All()
		if len(all) != SeriesLength {
			t.Fatalf("%v: expected %d instances, got %d", r, SeriesLength, len(all))
		}
		for i, instance := range all {
			if want := r.Next(base, i); !instance.Equal(want) {
				t.Fatalf("%v instance %d: rrule %v, Next %v", r, i, instance, want)
			}
		}
	}
}

func TestRRuleString(t *testing.T) {
	t.Parallel()

	value, err := Weekly.RRuleString(SeriesLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(value, "FREQ=WEEKLY") || !strings.Contains(value, "COUNT=5") {
		t.Fatalf("unexpected rule %q", value)
	}

	if _, err := None.RRuleString(1); !errors.Is(err, ErrNotPeriodic) {
		t.Fatalf("expected ErrNotPeriodic, got %v", err)
	}
	if _, err := None.RRule(time.Now(), 1); !errors.Is(err, ErrNotPeriodic) {
		t.Fatalf("expected ErrNotPeriodic, got %v", err)
	}
}

func TestMayClamp(t *testing.T) {
	t.Parallel()

	if !Monthly.MayClamp(time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected day 30 to clamp monthly")
	}
	if Monthly.MayClamp(time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("did not expect day 28 to clamp monthly")
	}
	if !Yearly.MayClamp(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected leap day to clamp yearly")
	}
	if Weekly.MayClamp(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("weekly never clamps")
	}
}
