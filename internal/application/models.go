package application

import (
	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/recurrence"
)

// MeetingInput carries the raw attributes of a meeting to be created.
// An empty Recurrence selects NONE.
type MeetingInput struct {
	Title          string
	Hours          uint64
	Minutes        uint64
	DateTime       string
	Location       string
	Recurrence     string
	ParticipantIDs []string
}

// ConflictWarning describes an existing meeting that overlaps a newly created one.
type ConflictWarning struct {
	MeetingTitle    string
	MeetingDateTime string
	Type            string
	ParticipantID   string
	Location        string
	At              string
}

// CreateMeetingResult bundles the stored meeting and any overlap warnings.
type CreateMeetingResult struct {
	Meeting  *meeting.Meeting
	Warnings []ConflictWarning
}

// AgendaEntry is one occurrence of a stored meeting inside an agenda window.
type AgendaEntry struct {
	Meeting    *meeting.Meeting
	Occurrence recurrence.Occurrence
}
