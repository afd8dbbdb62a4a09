// Package jsonfile keeps meetings in a single JSON data file.
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
)

// Store is a persistence.MeetingRepository backed by a JSON data file. Every
// operation reads the file and every mutation rewrites it.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ persistence.MeetingRepository = (*Store)(nil)

// New returns a store for the data file at path. The file is created on the
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty book.
func Load(path string) (persistence.Book, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return persistence.Book{}, nil
	}
	if err != nil {
		return persistence.Book{}, fmt.Errorf("read data file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return persistence.Book{}, nil
	}
	return persistence.DecodeJSON(bytes.NewReader(data))
}

// Save writes book to path atomically via a temp file and rename. The final
// file has mode 0600.
func Save(path string, book persistence.Book) error {
	if path == "" {
		return errors.New("data file path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	var buf bytes.Buffer
	if err := persistence.EncodeJSON(&buf, book); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".meetings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (s *Store) load() ([]*meeting.Meeting, error) {
	book, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	return book.ToMeetings()
}

func (s *Store) save(meetings []*meeting.Meeting) error {
	book, err := persistence.NewBook(meetings)
	if err != nil {
		return err
	}
	return Save(s.path, book)
}

func indexOf(meetings []*meeting.Meeting, key persistence.MeetingKey) int {
	return slices.IndexFunc(meetings, func(m *meeting.Meeting) bool {
		return persistence.KeyOf(m) == key
	})
}

// CreateMeeting appends m unless the same meeting is already stored.
func (s *Store) CreateMeeting(_ context.Context, m *meeting.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meetings, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(meetings, persistence.KeyOf(m)) >= 0 {
		return persistence.ErrDuplicate
	}
	return s.save(append(meetings, m))
}

// UpdateMeeting replaces the meeting stored under key.
func (s *Store) UpdateMeeting(_ context.Context, key persistence.MeetingKey, m *meeting.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meetings, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(meetings, key)
	if i < 0 {
		return persistence.ErrNotFound
	}
	if j := indexOf(meetings, persistence.KeyOf(m)); j >= 0 && j != i {
		return persistence.ErrDuplicate
	}
	meetings[i] = m
	return s.save(meetings)
}

// GetMeeting returns the meeting stored under key.
func (s *Store) GetMeeting(_ context.Context, key persistence.MeetingKey) (*meeting.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meetings, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(meetings, key)
	if i < 0 {
		return nil, persistence.ErrNotFound
	}
	return meetings[i], nil
}

// ListMeetings returns the stored meetings ordered by date-time, then title.
func (s *Store) ListMeetings(_ context.Context) ([]*meeting.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meetings, err := s.load()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(meetings, meeting.Chronological)
	return meetings, nil
}

// DeleteMeeting removes the meeting stored under key.
func (s *Store) DeleteMeeting(_ context.Context, key persistence.MeetingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meetings, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(meetings, key)
	if i < 0 {
		return persistence.ErrNotFound
	}
	return s.save(slices.Delete(meetings, i, i+1))
}

// ReplaceAll overwrites the data file with meetings.
func (s *Store) ReplaceAll(_ context.Context, meetings []*meeting.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range meetings {
		for _, other := range meetings[:i] {
			if other.IsSameMeeting(m) {
				return persistence.ErrDuplicate
			}
		}
	}
	return s.save(meetings)
}
