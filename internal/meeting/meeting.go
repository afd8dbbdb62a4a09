package meeting

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/index"
	"github.com/example/meeting-planner/internal/recurrence"
)

// Meeting is a scheduled meeting. Title and date-time identify it; the
// remaining fields are data. Only the participant set changes after
// construction.
type Meeting struct {
	// Identity fields
	title    Title
	dateTime DateTime

	// Data fields
	duration     Duration
	location     Location
	recurrence   recurrence.Recurrence
	participants map[uuid.UUID]struct{}
}

// New constructs a meeting held at location. Every field is required.
func New(title Title, duration Duration, dateTime DateTime, location Location, rec recurrence.Recurrence, participants []uuid.UUID) (*Meeting, error) {
	if location.IsZero() {
		return nil, missingField("location")
	}
	return newMeeting(title, duration, dateTime, location, rec, participants)
}

// NewWithoutLocation constructs a meeting that has no location. Every other
// field is required.
func NewWithoutLocation(title Title, duration Duration, dateTime DateTime, rec recurrence.Recurrence, participants []uuid.UUID) (*Meeting, error) {
	return newMeeting(title, duration, dateTime, Location{}, rec, participants)
}

func newMeeting(title Title, duration Duration, dateTime DateTime, location Location, rec recurrence.Recurrence, participants []uuid.UUID) (*Meeting, error) {
	switch {
	case title.IsZero():
		return nil, missingField("title")
	case duration.IsZero():
		return nil, missingField("duration")
	case dateTime.IsZero():
		return nil, missingField("dateTime")
	case rec == recurrence.Unspecified:
		return nil, missingField("recurrence")
	case !slices.Contains(recurrence.Values(), rec):
		return nil, invalidField("recurrence", recurrence.MessageConstraints)
	}

	return &Meeting{
		title:        title,
		dateTime:     dateTime,
		duration:     duration,
		location:     location,
		recurrence:   rec,
		participants: newParticipantSet(participants),
	}, nil
}

func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func invalidField(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, field, message)
}

// Title returns the meeting title.
func (m *Meeting) Title() Title { return m.title }

// Duration returns the meeting length.
func (m *Meeting) Duration() Duration { return m.duration }

// DateTime returns the meeting start.
func (m *Meeting) DateTime() DateTime { return m.dateTime }

// Location returns the meeting location and whether one is set.
func (m *Meeting) Location() (Location, bool) { return m.location, !m.location.IsZero() }

// Recurrence returns how the meeting repeats.
func (m *Meeting) Recurrence() recurrence.Recurrence { return m.recurrence }

// Participants returns a read-only view of the participant identifiers.
func (m *Meeting) Participants() Participants { return Participants{ids: m.participants} }

// End returns the wall-clock time the meeting finishes.
func (m *Meeting) End() DateTime { return m.dateTime.Add(m.duration.Std()) }

// RecurrenceOccurrences returns the occurrences of the meeting. A one-off
// meeting yields itself; a periodic meeting yields recurrence.SeriesLength new
// meetings that differ from m only in their date-time.
func (m *Meeting) RecurrenceOccurrences() []*Meeting {
	if m.recurrence == recurrence.None {
		return []*Meeting{m}
	}

	occurrences := make([]*Meeting, 0, recurrence.SeriesLength)
	for i := 0; i < recurrence.SeriesLength; i++ {
		occurrences = append(occurrences, &Meeting{
			title:        m.title,
			dateTime:     m.dateTime.NextOccurrence(m.recurrence, i),
			duration:     m.duration,
			location:     m.location,
			recurrence:   m.recurrence,
			participants: copyParticipantSet(m.participants),
		})
	}
	return occurrences
}

// IsSameRecurringMeeting reports whether other belongs to the same recurrence
// plan: same title and same recurrence.
func (m *Meeting) IsSameRecurringMeeting(other *Meeting) bool {
	if other == m {
		return true
	}
	return other != nil &&
		other.title.Equal(m.title) &&
		other.recurrence == m.recurrence
}

// IsSameMeeting reports whether other has the same title and date-time. This
// is weaker than Equal and is used to detect duplicates.
func (m *Meeting) IsSameMeeting(other *Meeting) bool {
	if other == m {
		return true
	}
	return other != nil &&
		other.title.Equal(m.title) &&
		other.dateTime.Equal(m.dateTime)
}

// IsFutureMeeting reports whether the meeting starts after now.
func (m *Meeting) IsFutureMeeting(now time.Time) bool {
	return m.dateTime.AfterInstant(now)
}

// AddParticipant adds the person's identifier. Adding a present identifier is
// a no-op.
func (m *Meeting) AddParticipant(person Person) {
	m.participants[person.UUID()] = struct{}{}
}

// DelParticipant removes the participant at idx in Participants().IDs()
// order. It panics when idx is out of range.
func (m *Meeting) DelParticipant(idx index.Index) {
	ids := m.Participants().IDs()
	if idx.ZeroBased() >= len(ids) {
		panic(fmt.Sprintf("meeting: participant index %d is invalid for %d participants", idx.OneBased(), len(ids)))
	}
	delete(m.participants, ids[idx.ZeroBased()])
}

// DeleteParticipant removes the person's identifier if present.
func (m *Meeting) DeleteParticipant(person Person) {
	delete(m.participants, person.UUID())
}

// Equal reports whether both meetings agree on every field. An absent
// location equals only another absent location.
func (m *Meeting) Equal(other *Meeting) bool {
	if other == m {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return other.title.Equal(m.title) &&
		other.duration.Equal(m.duration) &&
		other.dateTime.Equal(m.dateTime) &&
		other.location.Equal(m.location) &&
		other.Participants().Equal(m.Participants()) &&
		other.recurrence == m.recurrence
}

// Hash returns a hash consistent with Equal.
func (m *Meeting) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeString := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	writeString(m.title.value)
	writeUint(uint64(m.dateTime.value.Unix()))
	writeUint(m.duration.hours)
	writeUint(m.duration.minutes)
	writeString(m.location.value)
	writeUint(uint64(m.recurrence))
	for _, id := range m.Participants().IDs() {
		h.Write(id[:])
	}
	return h.Sum64()
}

// Copy returns a fully independent meeting equal to m.
func (m *Meeting) Copy() *Meeting {
	return &Meeting{
		title:        m.title.Copy(),
		dateTime:     m.dateTime.Copy(),
		duration:     m.duration.Copy(),
		location:     m.location.Copy(),
		recurrence:   m.recurrence,
		participants: copyParticipantSet(m.participants),
	}
}

// String renders the meeting for display.
func (m *Meeting) String() string {
	var b strings.Builder
	b.WriteString(m.title.String())
	b.WriteString(" Date and Time: ")
	b.WriteString(m.dateTime.String())
	b.WriteString(" Duration: ")
	b.WriteString(m.duration.String())
	b.WriteString(" Location: ")
	if loc, ok := m.Location(); ok {
		b.WriteString(loc.String())
	} else {
		b.WriteString("-")
	}
	b.WriteString(" Recurrence: ")
	b.WriteString(m.recurrence.String())
	b.WriteString(" Participants: ")
	for i, id := range m.Participants().IDs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(id.String())
	}
	return b.String()
}
