package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/index"
	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/recurrence"
	"github.com/example/meeting-planner/internal/scheduler"
)

// MeetingService orchestrates validation, conflict detection, and persistence for meetings.
// Meetings are addressed by their one-based position in the chronological listing.
type MeetingService struct {
	meetings persistence.MeetingRepository
	engine   *recurrence.Engine
	now      func() time.Time
	logger   *slog.Logger
}

// NewMeetingService constructs a meeting service with the provided dependencies.
func NewMeetingService(meetings persistence.MeetingRepository, engine *recurrence.Engine, now func() time.Time) *MeetingService {
	return NewMeetingServiceWithLogger(meetings, engine, now, nil)
}

// NewMeetingServiceWithLogger constructs a meeting service with a specified logger.
func NewMeetingServiceWithLogger(meetings persistence.MeetingRepository, engine *recurrence.Engine, now func() time.Time, logger *slog.Logger) *MeetingService {
	if engine == nil {
		engine = recurrence.NewEngine(0)
	}
	if now == nil {
		now = time.Now
	}
	return &MeetingService{meetings: meetings, engine: engine, now: now, logger: defaultLogger(logger)}
}

func (s *MeetingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MeetingService", operation, attrs...)
}

func (s *MeetingService) ready() error {
	if s == nil {
		return fmt.Errorf("MeetingService is nil")
	}
	if s.meetings == nil {
		return fmt.Errorf("meeting repository not configured")
	}
	return nil
}

// CreateMeeting validates input, rejects duplicates, and persists a new meeting.
// Overlaps with stored meetings are reported as warnings and do not block creation.
func (s *MeetingService) CreateMeeting(ctx context.Context, input MeetingInput) (result CreateMeetingResult, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "CreateMeeting",
		"title", input.Title,
		"date_time", input.DateTime,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create meeting", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("warning_count", len(result.Warnings)).InfoContext(ctx, "meeting created")
	}()

	candidate, vErr := buildMeeting(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing []*meeting.Meeting
	existing, err = s.meetings.ListMeetings(ctx)
	if err != nil {
		err = mapMeetingRepoError(err)
		return
	}
	for _, m := range existing {
		if m.IsSameMeeting(candidate) {
			err = fmt.Errorf("%w: %s at %s", ErrAlreadyExists, m.Title(), m.DateTime())
			return
		}
	}

	if err = s.meetings.CreateMeeting(ctx, candidate); err != nil {
		err = mapMeetingRepoError(err)
		return
	}

	result.Meeting = candidate
	result.Warnings = conflictWarnings(scheduler.DetectConflicts(existing, candidate))
	return
}

// ListMeetings returns every stored meeting ordered by date-time, then title.
func (s *MeetingService) ListMeetings(ctx context.Context) (meetings []*meeting.Meeting, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "ListMeetings")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list meetings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(meetings)).DebugContext(ctx, "meetings listed")
	}()

	meetings, err = s.listSorted(ctx)
	return
}

// GetMeeting returns the meeting at idx in the listing.
func (s *MeetingService) GetMeeting(ctx context.Context, idx index.Index) (*meeting.Meeting, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	m, err := s.meetingAt(ctx, idx)
	if err != nil {
		s.loggerWith(ctx, "GetMeeting", "index", idx.OneBased()).
			ErrorContext(ctx, "failed to get meeting", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	return m, nil
}

// DeleteMeeting removes the meeting at idx and returns it.
func (s *MeetingService) DeleteMeeting(ctx context.Context, idx index.Index) (deleted *meeting.Meeting, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "DeleteMeeting", "index", idx.OneBased())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete meeting", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("title", deleted.Title().String()).InfoContext(ctx, "meeting deleted")
	}()

	deleted, err = s.meetingAt(ctx, idx)
	if err != nil {
		return
	}
	if err = s.meetings.DeleteMeeting(ctx, persistence.KeyOf(deleted)); err != nil {
		err = mapMeetingRepoError(err)
		deleted = nil
	}
	return
}

// AddParticipant adds person to the meeting at idx. Adding a present participant is a no-op.
func (s *MeetingService) AddParticipant(ctx context.Context, idx index.Index, person meeting.Person) (*meeting.Meeting, error) {
	return s.mutateParticipants(ctx, "AddParticipant", idx, func(m *meeting.Meeting) error {
		m.AddParticipant(person)
		return nil
	})
}

// RemoveParticipantAt removes the participant at participantIdx, counted over
// the meeting's sorted participant identifiers.
func (s *MeetingService) RemoveParticipantAt(ctx context.Context, idx, participantIdx index.Index) (*meeting.Meeting, error) {
	return s.mutateParticipants(ctx, "RemoveParticipantAt", idx, func(m *meeting.Meeting) error {
		if count := m.Participants().Len(); participantIdx.ZeroBased() >= count {
			return fieldError("participant", fmt.Sprintf("participant index %d is out of range (meeting has %d participants)", participantIdx.OneBased(), count))
		}
		m.DelParticipant(participantIdx)
		return nil
	})
}

// RemoveParticipant removes person from the meeting at idx when present.
func (s *MeetingService) RemoveParticipant(ctx context.Context, idx index.Index, person meeting.Person) (*meeting.Meeting, error) {
	return s.mutateParticipants(ctx, "RemoveParticipant", idx, func(m *meeting.Meeting) error {
		m.DeleteParticipant(person)
		return nil
	})
}

func (s *MeetingService) mutateParticipants(ctx context.Context, operation string, idx index.Index, mutate func(*meeting.Meeting) error) (updated *meeting.Meeting, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, operation, "index", idx.OneBased())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update participants", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("participant_count", updated.Participants().Len()).InfoContext(ctx, "participants updated")
	}()

	var current *meeting.Meeting
	current, err = s.meetingAt(ctx, idx)
	if err != nil {
		return
	}

	candidate := current.Copy()
	if err = mutate(candidate); err != nil {
		return
	}
	if err = s.meetings.UpdateMeeting(ctx, persistence.KeyOf(current), candidate); err != nil {
		err = mapMeetingRepoError(err)
		return
	}
	updated = candidate
	return
}

// Occurrences expands the meeting at idx into its bounded occurrence series.
func (s *MeetingService) Occurrences(ctx context.Context, idx index.Index) ([]*meeting.Meeting, error) {
	m, err := s.GetMeeting(ctx, idx)
	if err != nil {
		return nil, err
	}
	return m.RecurrenceOccurrences(), nil
}

// Upcoming returns the occurrences of stored meetings that start within the
// given number of whole hours from now, in chronological order.
func (s *MeetingService) Upcoming(ctx context.Context, hours int) (upcoming []*meeting.Meeting, err error) {
	if err = s.ready(); err != nil {
		return
	}
	if hours < 0 {
		err = fieldError("hours", "hours must not be negative")
		return
	}

	logger := s.loggerWith(ctx, "Upcoming", "hours", hours)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to find upcoming meetings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(upcoming)).DebugContext(ctx, "upcoming meetings found")
	}()

	var stored []*meeting.Meeting
	stored, err = s.listSorted(ctx)
	if err != nil {
		return
	}

	within := meeting.WithinHours(hours, s.now())
	for _, m := range stored {
		for _, occurrence := range m.RecurrenceOccurrences() {
			if within(occurrence) {
				upcoming = append(upcoming, occurrence)
			}
		}
	}
	slices.SortFunc(upcoming, meeting.Chronological)
	return
}

// Agenda expands every stored meeting into the occurrences that touch the
// inclusive window [from, to]. Periodic meetings are followed past their
// bounded series. Times are read as wall-clock values.
func (s *MeetingService) Agenda(ctx context.Context, from, to time.Time) (entries []AgendaEntry, err error) {
	if err = s.ready(); err != nil {
		return
	}
	if to.Before(from) {
		err = fieldError("to", "end of the agenda window must not precede its start")
		return
	}

	logger := s.loggerWith(ctx, "Agenda", "from", from, "to", to)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build agenda", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(entries)).DebugContext(ctx, "agenda built")
	}()

	var stored []*meeting.Meeting
	stored, err = s.listSorted(ctx)
	if err != nil {
		return
	}

	rangeStart := meeting.NewDateTime(from).Time()
	rangeEnd := meeting.NewDateTime(to).Time()
	for _, m := range stored {
		var occurrences []recurrence.Occurrence
		occurrences, err = s.engine.GenerateOccurrences(m.Recurrence(), m.DateTime().Time(), m.Duration().Std(), recurrence.GenerateOptions{
			RangeStart: &rangeStart,
			RangeEnd:   &rangeEnd,
		})
		if err != nil {
			err = fmt.Errorf("expand %q: %w", m.Title(), err)
			return
		}
		for _, occurrence := range occurrences {
			entries = append(entries, AgendaEntry{Meeting: m, Occurrence: occurrence})
		}
	}

	slices.SortStableFunc(entries, func(a, b AgendaEntry) int {
		return a.Occurrence.Start.Compare(b.Occurrence.Start)
	})
	return
}

// Import replaces the stored meetings with the given set. The set must not
// contain two meetings with the same title and date-time.
func (s *MeetingService) Import(ctx context.Context, meetings []*meeting.Meeting) (err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "Import", "count", len(meetings))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to import meetings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "meetings imported")
	}()

	for i, m := range meetings {
		for _, other := range meetings[i+1:] {
			if m.IsSameMeeting(other) {
				err = fieldError("meetings", persistence.DuplicateMeetingMessage)
				return
			}
		}
	}

	if err = s.meetings.ReplaceAll(ctx, meetings); err != nil {
		err = mapMeetingRepoError(err)
	}
	return
}

func (s *MeetingService) listSorted(ctx context.Context) ([]*meeting.Meeting, error) {
	raw, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, mapMeetingRepoError(err)
	}
	meetings := slices.Clone(raw)
	slices.SortFunc(meetings, meeting.Chronological)
	return meetings, nil
}

func (s *MeetingService) meetingAt(ctx context.Context, idx index.Index) (*meeting.Meeting, error) {
	meetings, err := s.listSorted(ctx)
	if err != nil {
		return nil, err
	}
	if idx.ZeroBased() >= len(meetings) {
		return nil, fmt.Errorf("%w: meeting %d (have %d)", ErrNotFound, idx.OneBased(), len(meetings))
	}
	return meetings[idx.ZeroBased()], nil
}

func buildMeeting(input MeetingInput) (*meeting.Meeting, *ValidationError) {
	vErr := &ValidationError{}

	title, err := meeting.NewTitle(input.Title)
	if err != nil {
		vErr.add("title", meeting.TitleConstraints)
	}
	duration, err := meeting.NewDuration(input.Hours, input.Minutes)
	if err != nil {
		vErr.add("duration", meeting.DurationConstraints)
	}
	dateTime, err := meeting.ParseDateTime(strings.TrimSpace(input.DateTime))
	if err != nil {
		vErr.add("dateTime", meeting.DateTimeConstraints)
	}

	location, err := meeting.NewLocation(input.Location)
	switch {
	case input.Location == "":
		vErr.add("location", "location is required")
	case err != nil:
		vErr.add("location", meeting.LocationConstraints)
	}

	rec := recurrence.None
	if strings.TrimSpace(input.Recurrence) != "" {
		if rec, err = recurrence.Parse(input.Recurrence); err != nil {
			vErr.add("recurrence", recurrence.MessageConstraints)
		}
	}

	participants := make([]uuid.UUID, 0, len(input.ParticipantIDs))
	for _, raw := range input.ParticipantIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			vErr.add("participants", fmt.Sprintf("participant %q is not a valid UUID", raw))
			continue
		}
		participants = append(participants, id)
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	m, err := meeting.New(title, duration, dateTime, location, rec, participants)
	if err != nil {
		return nil, fieldError("meeting", err.Error())
	}
	return m, nil
}

func conflictWarnings(conflicts []scheduler.Conflict) []ConflictWarning {
	if len(conflicts) == 0 {
		return nil
	}
	warnings := make([]ConflictWarning, 0, len(conflicts))
	for _, c := range conflicts {
		w := ConflictWarning{
			MeetingTitle:    c.With.Title().String(),
			MeetingDateTime: c.With.DateTime().Format(),
			Type:            string(c.Type),
			Location:        c.Location,
			At:              c.At.Format(),
		}
		if c.Participant != uuid.Nil {
			w.ParticipantID = c.Participant.String()
		}
		warnings = append(warnings, w)
	}
	return warnings
}

func mapMeetingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) {
		return err
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	}
	if errors.Is(err, persistence.ErrMissingLocation) {
		return fieldError("location", "location is required for stored meetings")
	}
	return err
}
