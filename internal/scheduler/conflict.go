// Package scheduler detects scheduling conflicts between meetings.
package scheduler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/meeting"
)

// ConflictType describes the type of conflict detected between meetings.
type ConflictType string

const (
	// ConflictTypeParticipant indicates a participant is double-booked.
	ConflictTypeParticipant ConflictType = "participant"
	// ConflictTypeLocation indicates a location is double-booked.
	ConflictTypeLocation ConflictType = "location"
)

// Conflict details an overlapping meeting relation that callers can present to users.
type Conflict struct {
	With        *meeting.Meeting
	Type        ConflictType
	Participant uuid.UUID
	Location    string
	// At is the start of the first candidate occurrence that overlaps.
	At meeting.DateTime
}

type window struct {
	start, end meeting.DateTime
}

func (w window) overlaps(other window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func occurrenceWindows(m *meeting.Meeting) []window {
	occurrences := m.RecurrenceOccurrences()
	windows := make([]window, 0, len(occurrences))
	for _, occ := range occurrences {
		windows = append(windows, window{start: occ.DateTime(), end: occ.End()})
	}
	return windows
}

// firstOverlap returns the first candidate window overlapping any existing window.
func firstOverlap(candidate, existing []window) (meeting.DateTime, bool) {
	for _, c := range candidate {
		for _, e := range existing {
			if c.overlaps(e) {
				return c.start, true
			}
		}
	}
	return meeting.DateTime{}, false
}

// DetectConflicts identifies conflicts for the candidate meeting against
// existing ones. Recurring meetings are compared across their bounded
// occurrence series. Existing meetings that are the same meeting as the
// candidate are skipped. Locations match case-insensitively.
func DetectConflicts(existing []*meeting.Meeting, candidate *meeting.Meeting) []Conflict {
	candidateWindows := occurrenceWindows(candidate)
	candidateLocation, hasLocation := candidate.Location()

	var conflicts []Conflict
	for _, other := range existing {
		if other == nil || other.IsSameMeeting(candidate) {
			continue
		}

		at, ok := firstOverlap(candidateWindows, occurrenceWindows(other))
		if !ok {
			continue
		}

		for _, id := range candidate.Participants().IDs() {
			if other.Participants().Contains(id) {
				conflicts = append(conflicts, Conflict{
					With:        other,
					Type:        ConflictTypeParticipant,
					Participant: id,
					At:          at,
				})
			}
		}

		if otherLocation, ok := other.Location(); ok && hasLocation &&
			strings.EqualFold(otherLocation.String(), candidateLocation.String()) {
			conflicts = append(conflicts, Conflict{
				With:     other,
				Type:     ConflictTypeLocation,
				Location: otherLocation.String(),
				At:       at,
			})
		}
	}

	return conflicts
}
