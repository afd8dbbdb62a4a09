package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/recurrence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic clocks.
type ServiceFactory struct {
	Clock  *Clock
	Engine *recurrence.Engine
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:  NewClock(time.Time{}),
		Engine: recurrence.NewEngine(0),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.Engine == nil {
		factory.Engine = recurrence.NewEngine(0)
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithEngine overrides the recurrence engine used by the factory.
func WithEngine(engine *recurrence.Engine) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Engine = engine
	}
}

// MeetingServiceDeps captures dependencies for constructing a meeting service.
type MeetingServiceDeps struct {
	Meetings persistence.MeetingRepository
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewMeetingService builds a meeting service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewMeetingService(deps MeetingServiceDeps) *application.MeetingService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewMeetingServiceWithLogger(
		deps.Meetings,
		f.Engine,
		now,
		deps.Logger,
	)
}
