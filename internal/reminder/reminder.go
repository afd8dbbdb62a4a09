// Package reminder finds meetings that are about to start and can run that
// scan on a cron schedule.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
)

// DefaultSchedule runs a scan at the start of every minute.
const DefaultSchedule = "* * * * *"

// ErrInvalidSchedule is returned when a cron expression cannot be parsed.
var ErrInvalidSchedule = errors.New("reminder: invalid schedule")

// Source lists the meetings to scan.
type Source interface {
	ListMeetings(ctx context.Context) ([]*meeting.Meeting, error)
}

// Reminder is an occurrence that starts within the scan horizon.
type Reminder struct {
	Meeting  *meeting.Meeting
	StartsIn time.Duration
}

// NotifyFunc receives the reminders produced by a scheduled scan. It is only
// called when at least one new reminder is due.
type NotifyFunc func(ctx context.Context, reminders []Reminder)

// Scanner reports meeting occurrences starting within a number of hours.
type Scanner struct {
	source Source
	hours  int
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	notified map[persistence.MeetingKey]struct{}
}

// NewScanner constructs a Scanner. A nil now selects time.Now and a nil logger
// selects slog.Default.
func NewScanner(source Source, hours int, now func() time.Time, logger *slog.Logger) *Scanner {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		source:   source,
		hours:    hours,
		now:      now,
		logger:   logger.With("component", "reminder"),
		notified: make(map[persistence.MeetingKey]struct{}),
	}
}

// Due returns the occurrences that have not started before now and start
// within the scanner's horizon, soonest first.
func (s *Scanner) Due(ctx context.Context, now time.Time) ([]Reminder, error) {
	if s.source == nil {
		return nil, fmt.Errorf("reminder: source not configured")
	}
	meetings, err := s.source.ListMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("reminder: list meetings: %w", err)
	}

	within := meeting.WithinHours(s.hours, now)
	var due []*meeting.Meeting
	for _, m := range meetings {
		for _, occurrence := range m.RecurrenceOccurrences() {
			if within(occurrence) {
				due = append(due, occurrence)
			}
		}
	}
	slices.SortFunc(due, meeting.Chronological)

	reminders := make([]Reminder, 0, len(due))
	for _, m := range due {
		reminders = append(reminders, Reminder{Meeting: m, StartsIn: m.DateTime().Until(now)})
	}
	return reminders, nil
}

// Scan runs Due at the scanner's current time and passes occurrences not
// reported by an earlier scan to notify.
func (s *Scanner) Scan(ctx context.Context, notify NotifyFunc) error {
	reminders, err := s.Due(ctx, s.now())
	if err != nil {
		return err
	}

	fresh := s.markNotified(reminders)
	s.logger.DebugContext(ctx, "reminder scan completed", "due", len(reminders), "new", len(fresh))
	if len(fresh) > 0 && notify != nil {
		notify(ctx, fresh)
	}
	return nil
}

func (s *Scanner) markNotified(reminders []Reminder) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		key := persistence.KeyOf(r.Meeting)
		if _, seen := s.notified[key]; seen {
			continue
		}
		s.notified[key] = struct{}{}
		fresh = append(fresh, r)
	}
	return fresh
}

// Start scans on the given five-field cron schedule until ctx is done. An
// empty spec selects DefaultSchedule. Scan failures are logged and the
// schedule keeps running.
func (s *Scanner) Start(ctx context.Context, spec string, notify NotifyFunc) error {
	if spec == "" {
		spec = DefaultSchedule
	}

	c := cron.New(cron.WithLogger(cronLogger{logger: s.logger}))
	_, err := c.AddFunc(spec, func() {
		if err := s.Scan(ctx, notify); err != nil {
			s.logger.ErrorContext(ctx, "reminder scan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	s.logger.InfoContext(ctx, "reminder schedule started", "schedule", spec, "hours", s.hours)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.InfoContext(ctx, "reminder schedule stopped")
	return nil
}

// ValidateSchedule reports whether spec is a valid five-field cron expression.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}
	return nil
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
