package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/config"
	"github.com/example/meeting-planner/internal/logging"
	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/persistence/jsonfile"
	"github.com/example/meeting-planner/internal/persistence/sqlite"
	"github.com/example/meeting-planner/internal/recurrence"
	"github.com/example/meeting-planner/internal/reminder"
)

// environment holds the dependencies shared by every command. It is filled in
// by setup before a command runs.
type environment struct {
	clock func() time.Time

	cfg      config.Config
	loc      *time.Location
	logger   *slog.Logger
	meetings persistence.MeetingRepository
	service  *application.MeetingService
	closer   func() error
}

func (e *environment) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String(configFlagName))
	if err != nil {
		return err
	}
	if c.IsSet(storageFlagName) {
		cfg.Storage = c.String(storageFlagName)
	}
	if c.IsSet(dataFileFlagName) {
		cfg.DataFile = c.String(dataFileFlagName)
	}
	if c.IsSet(sqliteDSNFlagName) {
		cfg.SQLiteDSN = c.String(sqliteDSNFlagName)
	}
	if c.IsSet(logLevelFlagName) {
		cfg.LogLevel = c.String(logLevelFlagName)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, c.App.ErrWriter)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	switch cfg.Storage {
	case config.StorageSQLite:
		storage, err := sqlite.Open(cfg.SQLiteDSN, logger)
		if err != nil {
			return fmt.Errorf("open meetings database: %w", err)
		}
		if err := storage.Migrate(c.Context); err != nil {
			_ = storage.Close()
			return err
		}
		e.meetings = storage
		e.closer = storage.Close
	default:
		e.meetings = jsonfile.New(cfg.DataFile)
	}

	e.cfg = cfg
	e.loc = loc
	e.logger = logger
	e.service = application.NewMeetingServiceWithLogger(e.meetings, recurrence.NewEngine(0), e.now, logger)
	c.Context = logging.ContextWithLogger(c.Context, logger)
	return nil
}

func (e *environment) close(*cli.Context) error {
	if e.closer == nil {
		return nil
	}
	err := e.closer()
	e.closer = nil
	return err
}

// now returns the current time in the configured zone so that wall-clock
// comparisons match the zone meetings are planned in.
func (e *environment) now() time.Time {
	clock := e.clock
	if clock == nil {
		clock = time.Now
	}
	if e.loc == nil {
		return clock()
	}
	return clock().In(e.loc)
}

func (e *environment) scanner(hours int) *reminder.Scanner {
	return reminder.NewScanner(e.service, hours, e.now, e.logger)
}

func (e *environment) context(c *cli.Context) context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}
