package main

import (
	"fmt"
	"io"
	"time"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/reminder"
)

const agendaLayout = "Mon Jan 2 2006 1504"

func printMeetings(w io.Writer, meetings []*meeting.Meeting, empty string) {
	if len(meetings) == 0 {
		if empty != "" {
			fmt.Fprintln(w, empty)
		}
		return
	}
	for i, m := range meetings {
		fmt.Fprintf(w, "%d. %s\n", i+1, m)
	}
}

func printWarnings(w io.Writer, warnings []application.ConflictWarning) {
	for _, warning := range warnings {
		switch warning.Type {
		case "participant":
			fmt.Fprintf(w, "Warning: participant %s is also in %q (%s) at %s\n",
				warning.ParticipantID, warning.MeetingTitle, warning.MeetingDateTime, warning.At)
		default:
			fmt.Fprintf(w, "Warning: location %s is also used by %q (%s) at %s\n",
				warning.Location, warning.MeetingTitle, warning.MeetingDateTime, warning.At)
		}
	}
}

func printAgenda(w io.Writer, entries []application.AgendaEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nothing scheduled.")
		return
	}
	for _, entry := range entries {
		line := fmt.Sprintf("%s-%s %s", entry.Occurrence.Start.Format(agendaLayout), entry.Occurrence.End.Format("1504"), entry.Meeting.Title())
		if location, ok := entry.Meeting.Location(); ok {
			line += " @ " + location.String()
		}
		fmt.Fprintln(w, line)
	}
}

func printReminders(w io.Writer, reminders []reminder.Reminder) {
	for _, r := range reminders {
		fmt.Fprintf(w, "Reminder: %s starts in %s\n", r.Meeting.Title(), r.StartsIn.Round(time.Minute))
	}
}
