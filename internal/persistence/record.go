package persistence

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/recurrence"
)

// Field names used in decode error messages.
const (
	FieldTitle        = "Title"
	FieldDuration     = "Duration"
	FieldDateTime     = "DateTime"
	FieldLocation     = "Location"
	FieldRecurrence   = "Recurrence"
	FieldParticipants = "Participants"
)

// MeetingRecord is the flat stored form of a meeting. Nil fields are absent.
type MeetingRecord struct {
	Title        *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Duration     *string  `json:"duration,omitempty" yaml:"duration,omitempty"`
	DateTime     *string  `json:"dateTime,omitempty" yaml:"dateTime,omitempty"`
	Location     *string  `json:"location,omitempty" yaml:"location,omitempty"`
	Recurrence   *string  `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	Participants []string `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// FromMeeting encodes m. Participants are written in sorted order.
func FromMeeting(m *meeting.Meeting) (MeetingRecord, error) {
	location, ok := m.Location()
	if !ok {
		return MeetingRecord{}, fmt.Errorf("%w: %s", ErrMissingLocation, m.Title())
	}

	ids := m.Participants().IDs()
	participants := make([]string, 0, len(ids))
	for _, id := range ids {
		participants = append(participants, id.String())
	}

	return MeetingRecord{
		Title:        ptr(m.Title().String()),
		Duration:     ptr(EncodeDuration(m.Duration())),
		DateTime:     ptr(m.DateTime().Format()),
		Location:     ptr(location.String()),
		Recurrence:   ptr(m.Recurrence().String()),
		Participants: participants,
	}, nil
}

// EncodeDuration renders the stored "<hours> <minutes>" form.
func EncodeDuration(d meeting.Duration) string {
	return fmt.Sprintf("%d %d", d.Hours(), d.Minutes())
}

// ToMeeting decodes the record, validating fields in the order title,
// duration, date-time, location, recurrence, participants. The first failure
// is returned as an *IllegalValueError.
func (r MeetingRecord) ToMeeting() (*meeting.Meeting, error) {
	if r.Title == nil {
		return nil, missingField(FieldTitle)
	}
	if !meeting.IsValidTitle(*r.Title) {
		return nil, constraintViolation(FieldTitle, meeting.TitleConstraints)
	}
	title, err := meeting.NewTitle(*r.Title)
	if err != nil {
		return nil, constraintViolation(FieldTitle, meeting.TitleConstraints)
	}

	if r.Duration == nil {
		return nil, missingField(FieldDuration)
	}
	hours, minutes, err := meeting.SplitDuration(*r.Duration)
	if err != nil {
		return nil, parseError(FieldDuration)
	}
	if !meeting.IsValidDuration(hours, minutes) {
		return nil, constraintViolation(FieldDuration, meeting.DurationConstraints)
	}
	duration, err := meeting.NewDuration(hours, minutes)
	if err != nil {
		return nil, constraintViolation(FieldDuration, meeting.DurationConstraints)
	}

	if r.DateTime == nil {
		return nil, missingField(FieldDateTime)
	}
	dateTime, err := meeting.ParseDateTime(*r.DateTime)
	if err != nil {
		return nil, parseError(FieldDateTime)
	}

	if r.Location == nil {
		return nil, missingField(FieldLocation)
	}
	if !meeting.IsValidLocation(*r.Location) {
		return nil, constraintViolation(FieldLocation, meeting.LocationConstraints)
	}
	location, err := meeting.NewLocation(*r.Location)
	if err != nil {
		return nil, constraintViolation(FieldLocation, meeting.LocationConstraints)
	}

	rec := recurrence.None
	if r.Recurrence != nil {
		if !recurrence.IsValid(*r.Recurrence) {
			return nil, constraintViolation(FieldRecurrence, recurrence.MessageConstraints)
		}
		if rec, err = recurrence.Parse(*r.Recurrence); err != nil {
			return nil, constraintViolation(FieldRecurrence, recurrence.MessageConstraints)
		}
	}

	participants := make([]uuid.UUID, 0, len(r.Participants))
	for _, raw := range r.Participants {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, parseError(FieldParticipants)
		}
		participants = append(participants, id)
	}

	return meeting.New(title, duration, dateTime, location, rec, participants)
}

func ptr(s string) *string {
	return &s
}
