package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
)

func newMeeting(t *testing.T, title, dateTime string) *meeting.Meeting {
	t.Helper()

	duration, location, rec := "0 45", "Studio", "DAILY"
	m, err := persistence.MeetingRecord{
		Title:        &title,
		Duration:     &duration,
		DateTime:     &dateTime,
		Location:     &location,
		Recurrence:   &rec,
		Participants: []string{uuid.NewString()},
	}.ToMeeting()
	require.NoError(t, err)
	return m
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	book, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Empty(t, book.Meetings)
}

func TestSaveWritesPrivateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "meetings.json")
	book, err := persistence.NewBook([]*meeting.Meeting{newMeeting(t, "Sync", "2/2/24 0900")})
	require.NoError(t, err)
	require.NoError(t, Save(path, book))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, book, loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreOperations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "meetings.json"))

	later := newMeeting(t, "Later", "20/2/24 0900")
	earlier := newMeeting(t, "Earlier", "3/2/24 0900")
	require.NoError(t, store.CreateMeeting(ctx, later))
	require.NoError(t, store.CreateMeeting(ctx, earlier))
	require.ErrorIs(t, store.CreateMeeting(ctx, newMeeting(t, "Later", "20/2/24 0900")), persistence.ErrDuplicate)

	meetings, err := store.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	require.True(t, meetings[0].Equal(earlier))
	require.True(t, meetings[1].Equal(later))

	changed := later.Copy()
	changed.AddParticipant(meeting.PersonID(uuid.New()))
	require.NoError(t, store.UpdateMeeting(ctx, persistence.KeyOf(later), changed))
	fetched, err := store.GetMeeting(ctx, persistence.KeyOf(later))
	require.NoError(t, err)
	require.Equal(t, 2, fetched.Participants().Len())

	require.ErrorIs(t, store.UpdateMeeting(ctx, persistence.KeyOf(later), earlier), persistence.ErrDuplicate)

	require.NoError(t, store.DeleteMeeting(ctx, persistence.KeyOf(earlier)))
	require.ErrorIs(t, store.DeleteMeeting(ctx, persistence.KeyOf(earlier)), persistence.ErrNotFound)
	_, err = store.GetMeeting(ctx, persistence.KeyOf(earlier))
	require.ErrorIs(t, err, persistence.ErrNotFound)

	require.ErrorIs(t, store.ReplaceAll(ctx, []*meeting.Meeting{earlier, earlier}), persistence.ErrDuplicate)
	require.NoError(t, store.ReplaceAll(ctx, []*meeting.Meeting{earlier}))
	meetings, err = store.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meetings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"meetings":[{"title":"X","duration":"1 0","location":"HQ"}]}`), 0o600))

	_, err := New(path).ListMeetings(context.Background())
	require.ErrorIs(t, err, persistence.ErrIllegalValue)
	require.EqualError(t, err, "Meeting's DateTime field is missing!")
}
