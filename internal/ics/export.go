// Package ics renders meetings as an iCalendar (RFC 5545) feed.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/recurrence"
)

const (
	localTimestampLayout = "20060102T150405"
	defaultProductName   = "meeting-planner"
	uidDomain            = "meeting-planner"
)

var uidNamespace = uuid.MustParse("0b4f1f7a-9a64-4d6e-a7b3-65d2c1e8f4a2")

// Options controls how meetings are rendered.
type Options struct {
	// Location interprets meeting wall-clock times. Nil or UTC renders UTC
	// timestamps; any other named zone renders local times with a TZID.
	Location *time.Location
	// Now stamps every VEVENT with DTSTAMP. Zero selects time.Now.
	Now time.Time
	// ProductName is embedded in PRODID.
	ProductName string
}

// Export writes meetings as a VCALENDAR to w. Periodic meetings become a
// single VEVENT with an RRULE covering the bounded series, except where
// calendar clamping of long months would disagree with RFC 5545 expansion;
// those are written as one VEVENT per occurrence.
func Export(w io.Writer, meetings []*meeting.Meeting, opts Options) error {
	cal, err := Calendar(meetings, opts)
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}

// Calendar builds the calendar that Export serializes.
func Calendar(meetings []*meeting.Meeting, opts Options) (*ical.Calendar, error) {
	product := opts.ProductName
	if product == "" {
		product = defaultProductName
	}
	stamp := opts.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ical.NewCalendarFor(product)
	cal.SetMethod(ical.MethodPublish)
	if tzid, ok := zoneID(opts.Location); ok {
		cal.SetXWRTimezone(tzid)
	}

	for _, m := range meetings {
		if m == nil {
			continue
		}
		rec := m.Recurrence()
		if rec == recurrence.None || rec.MayClamp(m.DateTime().Time()) {
			for i, occurrence := range m.RecurrenceOccurrences() {
				uid := UID(m)
				if rec != recurrence.None {
					uid = occurrenceUID(m, i)
				}
				addEvent(cal, uid, occurrence, opts.Location, stamp)
			}
			continue
		}

		event := addEvent(cal, UID(m), m, opts.Location, stamp)
		rule, err := rec.RRuleString(recurrence.SeriesLength)
		if err != nil {
			return nil, fmt.Errorf("ics: recurrence rule for %q: %w", m.Title(), err)
		}
		event.AddRrule(rule)
	}

	return cal, nil
}

// UID derives a stable event identifier from the meeting's title and date-time.
func UID(m *meeting.Meeting) string {
	return identity(m) + "@" + uidDomain
}

func occurrenceUID(m *meeting.Meeting, index int) string {
	return fmt.Sprintf("%s-%d@%s", identity(m), index, uidDomain)
}

func identity(m *meeting.Meeting) string {
	return uuid.NewSHA1(uidNamespace, []byte(m.Title().String()+"\x00"+m.DateTime().Format())).String()
}

func addEvent(cal *ical.Calendar, uid string, m *meeting.Meeting, loc *time.Location, stamp time.Time) *ical.VEvent {
	event := cal.AddEvent(uid)
	event.SetDtStampTime(stamp)
	event.SetSummary(m.Title().String())
	if location, ok := m.Location(); ok {
		event.SetLocation(location.String())
	}

	start := m.DateTime().In(loc)
	end := m.End().In(loc)
	if tzid, ok := zoneID(loc); ok {
		event.SetProperty(ical.ComponentPropertyDtStart, start.Format(localTimestampLayout), ical.WithTZID(tzid))
		event.SetProperty(ical.ComponentPropertyDtEnd, end.Format(localTimestampLayout), ical.WithTZID(tzid))
	} else {
		event.SetStartAt(start)
		event.SetEndAt(end)
	}

	for _, id := range m.Participants().IDs() {
		event.AddProperty(ical.ComponentPropertyAttendee, "urn:uuid:"+id.String())
	}
	return event
}

func zoneID(loc *time.Location) (string, bool) {
	if loc == nil || loc == time.UTC || loc == time.Local {
		return "", false
	}
	name := loc.String()
	if name == "" || name == "UTC" {
		return "", false
	}
	return name, true
}
