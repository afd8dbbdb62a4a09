package persistence

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/recurrence"
)

var (
	participantA = uuid.MustParse("3f1c2b9e-3d5e-4d8b-9c43-0a6f6c2b1a01")
	participantB = uuid.MustParse("3f1c2b9e-3d5e-4d8b-9c43-0a6f6c2b1a02")
)

func sampleMeeting(t *testing.T, rec recurrence.Recurrence) *meeting.Meeting {
	t.Helper()

	title, err := meeting.NewTitle("Quarterly review")
	require.NoError(t, err)
	duration, err := meeting.NewDuration(1, 30)
	require.NoError(t, err)
	dateTime, err := meeting.ParseDateTime("15/3/24 1430")
	require.NoError(t, err)
	location, err := meeting.NewLocation("Board room")
	require.NoError(t, err)

	m, err := meeting.New(title, duration, dateTime, location, rec, []uuid.UUID{participantB, participantA})
	require.NoError(t, err)
	return m
}

func validRecord() MeetingRecord {
	return MeetingRecord{
		Title:        ptr("Quarterly review"),
		Duration:     ptr("1 30"),
		DateTime:     ptr("15/3/24 1430"),
		Location:     ptr("Board room"),
		Recurrence:   ptr("WEEKLY"),
		Participants: []string{participantA.String()},
	}
}

func TestFromMeeting(t *testing.T) {
	t.Parallel()

	record, err := FromMeeting(sampleMeeting(t, recurrence.Weekly))
	require.NoError(t, err)

	require.Equal(t, "Quarterly review", *record.Title)
	require.Equal(t, "1 30", *record.Duration)
	require.Equal(t, "15/3/24 1430", *record.DateTime)
	require.Equal(t, "Board room", *record.Location)
	require.Equal(t, "WEEKLY", *record.Recurrence)
	require.Equal(t, []string{participantA.String(), participantB.String()}, record.Participants)
}

func TestFromMeetingWithoutLocation(t *testing.T) {
	t.Parallel()

	title, _ := meeting.NewTitle("Walk")
	duration, _ := meeting.NewDuration(0, 20)
	dateTime, _ := meeting.ParseDateTime("1/4/24 1200")
	m, err := meeting.NewWithoutLocation(title, duration, dateTime, recurrence.None, nil)
	require.NoError(t, err)

	_, err = FromMeeting(m)
	require.ErrorIs(t, err, ErrMissingLocation)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, rec := range recurrence.Values() {
		original := sampleMeeting(t, rec)
		record, err := FromMeeting(original)
		require.NoError(t, err)

		decoded, err := record.ToMeeting()
		require.NoError(t, err)
		require.True(t, decoded.Equal(original), "round trip of %v changed the meeting: %v", rec, decoded)
	}
}

func TestToMeetingDefaults(t *testing.T) {
	t.Parallel()

	record := validRecord()
	record.Recurrence = nil
	record.Participants = nil

	m, err := record.ToMeeting()
	require.NoError(t, err)
	require.Equal(t, recurrence.None, m.Recurrence())
	require.Zero(t, m.Participants().Len())
}

func TestToMeetingErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*MeetingRecord)
		field   string
		message string
	}{
		{
			name:    "missing title",
			mutate:  func(r *MeetingRecord) { r.Title = nil },
			field:   FieldTitle,
			message: "Meeting's Title field is missing!",
		},
		{
			name:    "blank title",
			mutate:  func(r *MeetingRecord) { r.Title = ptr(" padded") },
			field:   FieldTitle,
			message: meeting.TitleConstraints,
		},
		{
			name:    "missing duration",
			mutate:  func(r *MeetingRecord) { r.Duration = nil },
			field:   FieldDuration,
			message: "Meeting's Duration field is missing!",
		},
		{
			name:    "duration minutes out of range",
			mutate:  func(r *MeetingRecord) { r.Duration = ptr("5 70") },
			field:   FieldDuration,
			message: meeting.DurationConstraints,
		},
		{
			name:    "malformed duration",
			mutate:  func(r *MeetingRecord) { r.Duration = ptr("ninety") },
			field:   FieldDuration,
			message: "Meeting's Duration was incorrectly saved in the data file",
		},
		{
			name:    "missing date time",
			mutate:  func(r *MeetingRecord) { r.DateTime = nil },
			field:   FieldDateTime,
			message: "Meeting's DateTime field is missing!",
		},
		{
			name:    "unparsable date time",
			mutate:  func(r *MeetingRecord) { r.DateTime = ptr("2024-03-15T14:30") },
			field:   FieldDateTime,
			message: "Meeting's DateTime was incorrectly saved in the data file",
		},
		{
			name:    "missing location",
			mutate:  func(r *MeetingRecord) { r.Location = nil },
			field:   FieldLocation,
			message: "Meeting's Location field is missing!",
		},
		{
			name:    "blank location",
			mutate:  func(r *MeetingRecord) { r.Location = ptr("") },
			field:   FieldLocation,
			message: meeting.LocationConstraints,
		},
		{
			name:    "unknown recurrence",
			mutate:  func(r *MeetingRecord) { r.Recurrence = ptr("FORTNIGHTLY") },
			field:   FieldRecurrence,
			message: recurrence.MessageConstraints,
		},
		{
			name:    "malformed participant",
			mutate:  func(r *MeetingRecord) { r.Participants = []string{"not-a-uuid"} },
			field:   FieldParticipants,
			message: "Meeting's Participants was incorrectly saved in the data file",
		},
		{
			name: "first failing field wins",
			mutate: func(r *MeetingRecord) {
				r.Duration = ptr("1 99")
				r.DateTime = nil
			},
			field:   FieldDuration,
			message: meeting.DurationConstraints,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			record := validRecord()
			tc.mutate(&record)

			_, err := record.ToMeeting()
			require.ErrorIs(t, err, ErrIllegalValue)

			var illegal *IllegalValueError
			require.True(t, errors.As(err, &illegal))
			require.Equal(t, tc.field, illegal.Field)
			require.Equal(t, tc.message, illegal.Message)
			require.EqualError(t, err, tc.message)
		})
	}
}
