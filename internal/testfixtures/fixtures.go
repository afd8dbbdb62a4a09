package testfixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/recurrence"
)

var meetingCounter uint64

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// MeetingFixture represents a deterministic meeting that can be materialised
// as a domain value, a service input, or a stored record.
type MeetingFixture struct {
	Title        string
	Hours        uint64
	Minutes      uint64
	DateTime     time.Time
	Location     string
	Recurrence   recurrence.Recurrence
	Participants []uuid.UUID
}

// MeetingOption configures the generated meeting fixture.
type MeetingOption func(*MeetingFixture)

// NewMeetingFixture returns a one-hour, one-off meeting with a unique title
// starting one day after ReferenceTime.
func NewMeetingFixture(opts ...MeetingOption) MeetingFixture {
	n := atomic.AddUint64(&meetingCounter, 1)
	fixture := MeetingFixture{
		Title:      fmt.Sprintf("Meeting %d", n),
		Hours:      1,
		DateTime:   ReferenceTime().Add(24 * time.Hour),
		Location:   fmt.Sprintf("Room %d", n),
		Recurrence: recurrence.None,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTitle overrides the generated title.
func WithTitle(title string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Title = title
	}
}

// WithDuration overrides the meeting length.
func WithDuration(hours, minutes uint64) MeetingOption {
	return func(f *MeetingFixture) {
		f.Hours = hours
		f.Minutes = minutes
	}
}

// WithStart overrides the start time.
func WithStart(t time.Time) MeetingOption {
	return func(f *MeetingFixture) {
		f.DateTime = t
	}
}

// WithLocation overrides the location. An empty location builds a meeting
// without one.
func WithLocation(location string) MeetingOption {
	return func(f *MeetingFixture) {
		f.Location = location
	}
}

// WithRecurrence overrides the recurrence.
func WithRecurrence(rec recurrence.Recurrence) MeetingOption {
	return func(f *MeetingFixture) {
		f.Recurrence = rec
	}
}

// WithParticipants sets the participant identifiers.
func WithParticipants(ids ...uuid.UUID) MeetingOption {
	return func(f *MeetingFixture) {
		f.Participants = append([]uuid.UUID(nil), ids...)
	}
}

// Meeting builds the fixture as a domain meeting, failing the test on error.
func (f MeetingFixture) Meeting(tb testing.TB) *meeting.Meeting {
	tb.Helper()

	title, err := meeting.NewTitle(f.Title)
	if err != nil {
		tb.Fatalf("fixture title: %v", err)
	}
	duration, err := meeting.NewDuration(f.Hours, f.Minutes)
	if err != nil {
		tb.Fatalf("fixture duration: %v", err)
	}
	dateTime := meeting.NewDateTime(f.DateTime)

	var m *meeting.Meeting
	if f.Location == "" {
		m, err = meeting.NewWithoutLocation(title, duration, dateTime, f.Recurrence, f.Participants)
	} else {
		location, lErr := meeting.NewLocation(f.Location)
		if lErr != nil {
			tb.Fatalf("fixture location: %v", lErr)
		}
		m, err = meeting.New(title, duration, dateTime, location, f.Recurrence, f.Participants)
	}
	if err != nil {
		tb.Fatalf("fixture meeting: %v", err)
	}
	return m
}

// Input returns the fixture as an application.MeetingInput.
func (f MeetingFixture) Input() application.MeetingInput {
	ids := make([]string, 0, len(f.Participants))
	for _, id := range f.Participants {
		ids = append(ids, id.String())
	}
	return application.MeetingInput{
		Title:          f.Title,
		Hours:          f.Hours,
		Minutes:        f.Minutes,
		DateTime:       meeting.NewDateTime(f.DateTime).Format(),
		Location:       f.Location,
		Recurrence:     f.Recurrence.String(),
		ParticipantIDs: ids,
	}
}

// Record returns the fixture in its stored form, failing the test on error.
func (f MeetingFixture) Record(tb testing.TB) persistence.MeetingRecord {
	tb.Helper()

	record, err := persistence.FromMeeting(f.Meeting(tb))
	if err != nil {
		tb.Fatalf("fixture record: %v", err)
	}
	return record
}
