package main

import (
	"github.com/urfave/cli/v2"

	"github.com/example/meeting-planner/internal/config"
)

const (
	configFlagName      = "config"
	storageFlagName     = "storage"
	dataFileFlagName    = "data-file"
	sqliteDSNFlagName   = "sqlite-dsn"
	logLevelFlagName    = "log-level"
	titleFlagName       = "title"
	hoursFlagName       = "hours"
	minutesFlagName     = "minutes"
	atFlagName          = "at"
	locationFlagName    = "location"
	recurrenceFlagName  = "recurrence"
	participantFlagName = "participant"
	fromFlagName        = "from"
	toFlagName          = "to"
	formatFlagName      = "format"
	outputFlagName      = "output"
	watchFlagName       = "watch"

	formatJSON = "json"
	formatYAML = "yaml"
	formatICS  = "ics"
)

var (
	configFlag = &cli.StringFlag{
		Name:    configFlagName,
		Usage:   "path to a YAML configuration file",
		EnvVars: []string{config.EnvPrefix + "_CONFIG"},
	}
	storageFlag = &cli.StringFlag{
		Name:  storageFlagName,
		Usage: "storage backend, sqlite or json",
	}
	dataFileFlag = &cli.StringFlag{
		Name:  dataFileFlagName,
		Usage: "JSON data file used by the json backend",
	}
	sqliteDSNFlag = &cli.StringFlag{
		Name:  sqliteDSNFlagName,
		Usage: "database path used by the sqlite backend",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  logLevelFlagName,
		Usage: "log level, one of debug, info, warn or error",
	}

	titleFlag = &cli.StringFlag{
		Name:     titleFlagName,
		Aliases:  []string{"t"},
		Usage:    "meeting title",
		Required: true,
	}
	hoursFlag = &cli.Uint64Flag{
		Name:  hoursFlagName,
		Usage: "duration hours",
	}
	minutesFlag = &cli.Uint64Flag{
		Name:  minutesFlagName,
		Usage: "duration minutes, at most 59",
	}
	atFlag = &cli.StringFlag{
		Name:     atFlagName,
		Usage:    "start date and time as d/M/yy HHmm, e.g. 15/3/24 1430",
		Required: true,
	}
	locationFlag = &cli.StringFlag{
		Name:     locationFlagName,
		Aliases:  []string{"l"},
		Usage:    "meeting location",
		Required: true,
	}
	recurrenceFlag = &cli.StringFlag{
		Name:    recurrenceFlagName,
		Aliases: []string{"r"},
		Usage:   "NONE, DAILY, WEEKLY, MONTHLY or YEARLY",
		Value:   "NONE",
	}
	participantFlag = &cli.StringSliceFlag{
		Name:    participantFlagName,
		Aliases: []string{"p"},
		Usage:   "participant UUID, repeatable",
	}
	fromFlag = &cli.StringFlag{
		Name:  fromFlagName,
		Usage: "window start as d/M/yy HHmm, defaults to now",
	}
	toFlag = &cli.StringFlag{
		Name:  toFlagName,
		Usage: "window end as d/M/yy HHmm, defaults to seven days after the start",
	}
	exportFormatFlag = &cli.StringFlag{
		Name:  formatFlagName,
		Usage: "output format, json, yaml or ics",
		Value: formatJSON,
	}
	importFormatFlag = &cli.StringFlag{
		Name:  formatFlagName,
		Usage: "input format, json or yaml",
		Value: formatJSON,
	}
	outputFlag = &cli.StringFlag{
		Name:    outputFlagName,
		Aliases: []string{"o"},
		Usage:   "write to this file instead of standard output",
	}
	lookaheadFlag = &cli.IntFlag{
		Name:  hoursFlagName,
		Usage: "look ahead this many whole hours, defaults to reminder_hours",
	}
	watchFlag = &cli.BoolFlag{
		Name:  watchFlagName,
		Usage: "keep running and scan on the configured cron schedule",
	}
)
