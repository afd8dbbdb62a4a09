package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
)

const selectMeetingColumns = `SELECT id, title, duration, date_time, location, recurrence FROM meetings`

// meetingRow carries the stored columns of a meeting before validation.
type meetingRow struct {
	id     int64
	record persistence.MeetingRecord
}

// CreateMeeting inserts m. A stored meeting with the same title and date-time
// yields persistence.ErrDuplicate.
func (s *Storage) CreateMeeting(ctx context.Context, m *meeting.Meeting) error {
	record, err := persistence.FromMeeting(m)
	if err != nil {
		return err
	}
	sortTime := sortKey(m)

	return withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			_, err := s.insertMeeting(ctx, tx, record, sortTime)
			return err
		})
	})
}

// UpdateMeeting replaces the meeting stored under key with m.
func (s *Storage) UpdateMeeting(ctx context.Context, key persistence.MeetingKey, m *meeting.Meeting) error {
	record, err := persistence.FromMeeting(m)
	if err != nil {
		return err
	}
	now := s.now().UTC().Format(time.RFC3339)

	return withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			id, err := s.lookupID(ctx, tx, key)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, `
				UPDATE meetings
				SET title = ?, date_time = ?, sort_time = ?, duration = ?, location = ?, recurrence = ?, updated_at = ?
				WHERE id = ?`,
				*record.Title, *record.DateTime, sortKey(m), *record.Duration, *record.Location, *record.Recurrence, now, id,
			)
			if err != nil {
				return s.mapper.MapError(err)
			}

			if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = ?`, id); err != nil {
				return s.mapper.MapError(err)
			}
			return insertParticipants(ctx, tx, id, record.Participants, s.mapper)
		})
	})
}

// GetMeeting returns the meeting stored under key.
func (s *Storage) GetMeeting(ctx context.Context, key persistence.MeetingKey) (*meeting.Meeting, error) {
	row := s.pool.DB().QueryRowContext(ctx, selectMeetingColumns+` WHERE title = ? AND date_time = ?`, key.Title, key.DateTime)
	found, err := scanMeetingRow(row)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}

	participants, err := s.participantsByMeeting(ctx, &found.id)
	if err != nil {
		return nil, err
	}
	found.record.Participants = participants[found.id]
	return decodeRow(found)
}

// ListMeetings returns every stored meeting ordered by date-time, then title.
// Rows that fail validation surface as *persistence.IllegalValueError.
func (s *Storage) ListMeetings(ctx context.Context) ([]*meeting.Meeting, error) {
	rows, err := s.pool.DB().QueryContext(ctx, selectMeetingColumns+` ORDER BY sort_time, title`)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	defer rows.Close()

	var found []meetingRow
	for rows.Next() {
		r, err := scanMeetingRow(rows)
		if err != nil {
			return nil, s.mapper.MapError(err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapper.MapError(err)
	}

	participants, err := s.participantsByMeeting(ctx, nil)
	if err != nil {
		return nil, err
	}

	meetings := make([]*meeting.Meeting, 0, len(found))
	for _, r := range found {
		r.record.Participants = participants[r.id]
		m, err := decodeRow(r)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, nil
}

// DeleteMeeting removes the meeting stored under key.
func (s *Storage) DeleteMeeting(ctx context.Context, key persistence.MeetingKey) error {
	return withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			id, err := s.lookupID(ctx, tx, key)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = ?`, id); err != nil {
				return s.mapper.MapError(err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id); err != nil {
				return s.mapper.MapError(err)
			}
			return nil
		})
	})
}

// ReplaceAll swaps every stored meeting for meetings in one transaction.
func (s *Storage) ReplaceAll(ctx context.Context, meetings []*meeting.Meeting) error {
	records := make([]persistence.MeetingRecord, 0, len(meetings))
	sortKeys := make([]string, 0, len(meetings))
	for _, m := range meetings {
		record, err := persistence.FromMeeting(m)
		if err != nil {
			return err
		}
		records = append(records, record)
		sortKeys = append(sortKeys, sortKey(m))
	}

	return withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants`); err != nil {
				return s.mapper.MapError(err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM meetings`); err != nil {
				return s.mapper.MapError(err)
			}
			for i, record := range records {
				if _, err := s.insertMeeting(ctx, tx, record, sortKeys[i]); err != nil {
					return err
				}
			}
			s.logger.DebugContext(ctx, "replaced stored meetings", "count", len(records))
			return nil
		})
	})
}

func (s *Storage) insertMeeting(ctx context.Context, tx *sql.Tx, record persistence.MeetingRecord, sortTime string) (int64, error) {
	now := s.now().UTC().Format(time.RFC3339)
	result, err := tx.ExecContext(ctx, `
		INSERT INTO meetings (title, date_time, sort_time, duration, location, recurrence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		*record.Title, *record.DateTime, sortTime, *record.Duration, *record.Location, *record.Recurrence, now, now,
	)
	if err != nil {
		return 0, s.mapper.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted meeting id: %w", err)
	}
	return id, insertParticipants(ctx, tx, id, record.Participants, s.mapper)
}

func (s *Storage) lookupID(ctx context.Context, tx *sql.Tx, key persistence.MeetingKey) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM meetings WHERE title = ? AND date_time = ?`, key.Title, key.DateTime).Scan(&id)
	if err != nil {
		return 0, s.mapper.MapError(err)
	}
	return id, nil
}

// participantsByMeeting loads participant identifiers keyed by meeting id,
// for a single meeting when id is non-nil.
func (s *Storage) participantsByMeeting(ctx context.Context, id *int64) (map[int64][]string, error) {
	query := `SELECT meeting_id, participant_id FROM meeting_participants`
	var args []any
	if id != nil {
		query += ` WHERE meeting_id = ?`
		args = append(args, *id)
	}
	query += ` ORDER BY meeting_id, participant_id`

	rows, err := s.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	defer rows.Close()

	participants := make(map[int64][]string)
	for rows.Next() {
		var (
			meetingID     int64
			participantID string
		)
		if err := rows.Scan(&meetingID, &participantID); err != nil {
			return nil, s.mapper.MapError(err)
		}
		participants[meetingID] = append(participants[meetingID], participantID)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapper.MapError(err)
	}
	return participants, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, meetingID int64, participants []string, mapper *ErrorMapper) error {
	for _, participantID := range participants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meeting_participants (meeting_id, participant_id) VALUES (?, ?)`,
			meetingID, participantID,
		); err != nil {
			return mapper.MapError(err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeetingRow(row rowScanner) (meetingRow, error) {
	var (
		r                                               meetingRow
		title, duration, dateTime, location, recurrence sql.NullString
	)
	if err := row.Scan(&r.id, &title, &duration, &dateTime, &location, &recurrence); err != nil {
		return meetingRow{}, err
	}
	r.record = persistence.MeetingRecord{
		Title:      nullable(title),
		Duration:   nullable(duration),
		DateTime:   nullable(dateTime),
		Location:   nullable(location),
		Recurrence: nullable(recurrence),
	}
	return r, nil
}

func decodeRow(r meetingRow) (*meeting.Meeting, error) {
	m, err := r.record.ToMeeting()
	if err != nil {
		return nil, fmt.Errorf("meeting row %d: %w", r.id, err)
	}
	return m, nil
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

// sortKey orders meetings chronologically; date_time itself does not sort.
func sortKey(m *meeting.Meeting) string {
	return m.DateTime().Time().Format(time.RFC3339)
}
