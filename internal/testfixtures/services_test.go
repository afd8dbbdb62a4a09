package testfixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/index"
)

func TestServiceFactoryNewMeetingServiceAgainstSQLite(t *testing.T) {
	harness := NewSQLiteHarness(t)
	factory := NewServiceFactory()
	svc := factory.NewMeetingService(MeetingServiceDeps{Meetings: harness.Meetings})
	ctx := context.Background()

	people := NewIDGenerator("svc").Take(2)
	first := NewMeetingFixture(WithTitle("Standup"), WithStart(ReferenceTime().Add(2*time.Hour)), WithParticipants(people...))
	second := NewMeetingFixture(WithTitle("Review"), WithStart(ReferenceTime().Add(time.Hour)), WithParticipants(people[0]))

	if _, err := svc.CreateMeeting(ctx, first.Input()); err != nil {
		t.Fatalf("CreateMeeting returned error: %v", err)
	}
	if _, err := svc.CreateMeeting(ctx, second.Input()); err != nil {
		t.Fatalf("CreateMeeting returned error: %v", err)
	}
	if _, err := svc.CreateMeeting(ctx, first.Input()); !errors.Is(err, application.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	listed, err := svc.ListMeetings(ctx)
	if err != nil {
		t.Fatalf("ListMeetings returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].Title().String() != "Review" {
		t.Fatalf("expected chronological listing, got %v", listed)
	}

	updated, err := svc.RemoveParticipantAt(ctx, index.FromOneBased(2), index.FromOneBased(1))
	if err != nil {
		t.Fatalf("RemoveParticipantAt returned error: %v", err)
	}
	if updated.Participants().Len() != 1 {
		t.Fatalf("expected one remaining participant, got %d", updated.Participants().Len())
	}

	upcoming, err := svc.Upcoming(ctx, 1)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title().String() != "Review" {
		t.Fatalf("expected only the review within an hour, got %v", upcoming)
	}
}
