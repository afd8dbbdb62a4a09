package persistence

import (
	"context"

	"github.com/example/meeting-planner/internal/meeting"
)

// MeetingKey identifies a stored meeting by its title and stored date-time.
type MeetingKey struct {
	Title    string
	DateTime string
}

// KeyOf returns the storage key of m.
func KeyOf(m *meeting.Meeting) MeetingKey {
	return MeetingKey{Title: m.Title().String(), DateTime: m.DateTime().Format()}
}

// MeetingRepository stores meetings keyed by title and date-time.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, m *meeting.Meeting) error
	UpdateMeeting(ctx context.Context, key MeetingKey, m *meeting.Meeting) error
	GetMeeting(ctx context.Context, key MeetingKey) (*meeting.Meeting, error)
	ListMeetings(ctx context.Context) ([]*meeting.Meeting, error)
	DeleteMeeting(ctx context.Context, key MeetingKey) error
	// ReplaceAll swaps the stored meetings for the given set.
	ReplaceAll(ctx context.Context, meetings []*meeting.Meeting) error
}
