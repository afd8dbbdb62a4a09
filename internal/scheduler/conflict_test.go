package scheduler

import (
	"testing"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/recurrence"
)

var (
	alice = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func newMeeting(t *testing.T, title, dateTime string, hours uint64, location string, rec recurrence.Recurrence, participants ...uuid.UUID) *meeting.Meeting {
	t.Helper()

	ti, err := meeting.NewTitle(title)
	if err != nil {
		t.Fatalf("NewTitle: %v", err)
	}
	dt, err := meeting.ParseDateTime(dateTime)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	d, err := meeting.NewDuration(hours, 0)
	if err != nil {
		t.Fatalf("NewDuration: %v", err)
	}
	loc, err := meeting.NewLocation(location)
	if err != nil {
		t.Fatalf("NewLocation: %v", err)
	}
	m, err := meeting.New(ti, d, dt, loc, rec, participants)
	if err != nil {
		t.Fatalf("meeting.New: %v", err)
	}
	return m
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("participant overlap produces conflict", func(t *testing.T) {
		t.Parallel()

		existing := newMeeting(t, "Standup", "4/3/24 0900", 1, "Room A", recurrence.None, alice)
		candidate := newMeeting(t, "Interview", "4/3/24 0930", 1, "Room B", recurrence.None, alice, bob)

		conflicts := DetectConflicts([]*meeting.Meeting{existing}, candidate)
		if len(conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %+v", conflicts)
		}
		c := conflicts[0]
		if c.Type != ConflictTypeParticipant || c.Participant != alice || c.With != existing {
			t.Fatalf("unexpected conflict %+v", c)
		}
		if c.At.Format() != "4/3/24 0930" {
			t.Fatalf("unexpected conflict time %s", c.At.Format())
		}
	})

	t.Run("location overlap produces conflict", func(t *testing.T) {
		t.Parallel()

		existing := newMeeting(t, "Board", "4/3/24 1000", 2, "Main Hall", recurrence.None)
		candidate := newMeeting(t, "Town hall", "4/3/24 1100", 1, "main hall", recurrence.None)

		conflicts := DetectConflicts([]*meeting.Meeting{existing}, candidate)
		if len(conflicts) != 1 || conflicts[0].Type != ConflictTypeLocation || conflicts[0].Location != "Main Hall" {
			t.Fatalf("expected a location conflict, got %+v", conflicts)
		}
	})

	t.Run("recurring series overlap on a later occurrence", func(t *testing.T) {
		t.Parallel()

		weekly := newMeeting(t, "Weekly sync", "4/3/24 1000", 1, "Room A", recurrence.Weekly, bob)
		candidate := newMeeting(t, "Offsite", "18/3/24 0900", 3, "Elsewhere", recurrence.None, bob)

		conflicts := DetectConflicts([]*meeting.Meeting{weekly}, candidate)
		if len(conflicts) != 1 || conflicts[0].Participant != bob {
			t.Fatalf("expected a participant conflict, got %+v", conflicts)
		}
	})

	t.Run("back to back meetings do not conflict", func(t *testing.T) {
		t.Parallel()

		existing := newMeeting(t, "First", "4/3/24 0900", 1, "Room A", recurrence.None, alice)
		candidate := newMeeting(t, "Second", "4/3/24 1000", 1, "Room A", recurrence.None, alice)

		if conflicts := DetectConflicts([]*meeting.Meeting{existing}, candidate); len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %+v", conflicts)
		}
	})

	t.Run("non-overlapping meetings yield no conflicts", func(t *testing.T) {
		t.Parallel()

		existing := newMeeting(t, "Morning", "4/3/24 0800", 1, "Room A", recurrence.Daily, alice)
		candidate := newMeeting(t, "Evening", "4/3/24 1800", 1, "Room A", recurrence.Daily, alice)

		if conflicts := DetectConflicts([]*meeting.Meeting{existing}, candidate); len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %+v", conflicts)
		}
	})

	t.Run("the same meeting is ignored", func(t *testing.T) {
		t.Parallel()

		existing := newMeeting(t, "Standup", "4/3/24 0900", 1, "Room A", recurrence.None, alice)
		candidate := newMeeting(t, "Standup", "4/3/24 0900", 1, "Room A", recurrence.None, alice)

		if conflicts := DetectConflicts([]*meeting.Meeting{existing}, candidate); len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %+v", conflicts)
		}
	})
}
