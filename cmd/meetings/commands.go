package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/example/meeting-planner/internal/application"
	"github.com/example/meeting-planner/internal/ics"
	"github.com/example/meeting-planner/internal/index"
	"github.com/example/meeting-planner/internal/meeting"
	"github.com/example/meeting-planner/internal/persistence"
	"github.com/example/meeting-planner/internal/reminder"
)

const defaultAgendaWindow = 7 * 24 * time.Hour

func addCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add a meeting",
		Flags: []cli.Flag{titleFlag, hoursFlag, minutesFlag, atFlag, locationFlag, recurrenceFlag, participantFlag},
		Action: func(c *cli.Context) error {
			result, err := env.service.CreateMeeting(env.context(c), application.MeetingInput{
				Title:          c.String(titleFlagName),
				Hours:          c.Uint64(hoursFlagName),
				Minutes:        c.Uint64(minutesFlagName),
				DateTime:       c.String(atFlagName),
				Location:       c.String(locationFlagName),
				Recurrence:     c.String(recurrenceFlagName),
				ParticipantIDs: c.StringSlice(participantFlagName),
			})
			if err != nil {
				return err
			}

			out := c.App.Writer
			fmt.Fprintf(out, "New meeting added: %s\n", result.Meeting)
			printWarnings(out, result.Warnings)
			return nil
		},
	}
}

func listCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list meetings in chronological order",
		Action: func(c *cli.Context) error {
			meetings, err := env.service.ListMeetings(env.context(c))
			if err != nil {
				return err
			}
			printMeetings(c.App.Writer, meetings, "No meetings found.")
			return nil
		},
	}
}

func deleteCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete the meeting at INDEX in the listing",
		ArgsUsage: "INDEX",
		Action: func(c *cli.Context) error {
			idx, err := indexArg(c, 0, "INDEX")
			if err != nil {
				return err
			}
			deleted, err := env.service.DeleteMeeting(env.context(c), idx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Deleted meeting: %s\n", deleted)
			return nil
		},
	}
}

func occurrencesCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "occurrences",
		Usage:     "show the occurrences of the meeting at INDEX",
		ArgsUsage: "INDEX",
		Action: func(c *cli.Context) error {
			idx, err := indexArg(c, 0, "INDEX")
			if err != nil {
				return err
			}
			occurrences, err := env.service.Occurrences(env.context(c), idx)
			if err != nil {
				return err
			}
			printMeetings(c.App.Writer, occurrences, "")
			return nil
		},
	}
}

func participantCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "participant",
		Usage: "manage the participants of a meeting",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add a participant to the meeting at INDEX",
				ArgsUsage: "INDEX UUID",
				Action: func(c *cli.Context) error {
					idx, person, err := indexAndPerson(c)
					if err != nil {
						return err
					}
					updated, err := env.service.AddParticipant(env.context(c), idx, person)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated meeting: %s\n", updated)
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove the participant at PARTICIPANT_INDEX from the meeting at INDEX",
				ArgsUsage: "INDEX PARTICIPANT_INDEX",
				Action: func(c *cli.Context) error {
					idx, err := indexArg(c, 0, "INDEX")
					if err != nil {
						return err
					}
					participantIdx, err := indexArg(c, 1, "PARTICIPANT_INDEX")
					if err != nil {
						return err
					}
					updated, err := env.service.RemoveParticipantAt(env.context(c), idx, participantIdx)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated meeting: %s\n", updated)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "remove the participant with UUID from the meeting at INDEX",
				ArgsUsage: "INDEX UUID",
				Action: func(c *cli.Context) error {
					idx, person, err := indexAndPerson(c)
					if err != nil {
						return err
					}
					updated, err := env.service.RemoveParticipant(env.context(c), idx, person)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated meeting: %s\n", updated)
					return nil
				},
			},
		},
	}
}

func upcomingCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "upcoming",
		Usage: "list meeting occurrences starting within the next hours",
		Flags: []cli.Flag{lookaheadFlag},
		Action: func(c *cli.Context) error {
			meetings, err := env.service.Upcoming(env.context(c), lookahead(c, env))
			if err != nil {
				return err
			}
			printMeetings(c.App.Writer, meetings, "No upcoming meetings.")
			return nil
		},
	}
}

func agendaCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "agenda",
		Usage: "list every occurrence inside a time window",
		Flags: []cli.Flag{fromFlag, toFlag},
		Action: func(c *cli.Context) error {
			from := env.now()
			if c.IsSet(fromFlagName) {
				dt, err := meeting.ParseDateTime(c.String(fromFlagName))
				if err != nil {
					return fmt.Errorf("--%s: %w", fromFlagName, err)
				}
				from = dt.Time()
			}
			to := from.Add(defaultAgendaWindow)
			if c.IsSet(toFlagName) {
				dt, err := meeting.ParseDateTime(c.String(toFlagName))
				if err != nil {
					return fmt.Errorf("--%s: %w", toFlagName, err)
				}
				to = dt.Time()
			}

			entries, err := env.service.Agenda(env.context(c), from, to)
			if err != nil {
				return err
			}
			printAgenda(c.App.Writer, entries)
			return nil
		},
	}
}

func exportCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write every meeting as JSON, YAML or iCalendar",
		Flags: []cli.Flag{exportFormatFlag, outputFlag},
		Action: func(c *cli.Context) error {
			meetings, err := env.service.ListMeetings(env.context(c))
			if err != nil {
				return err
			}

			return withOutput(c, func(w io.Writer) error {
				switch format := strings.ToLower(c.String(formatFlagName)); format {
				case formatJSON, formatYAML:
					book, err := persistence.NewBook(meetings)
					if err != nil {
						return err
					}
					if format == formatYAML {
						return persistence.EncodeYAML(w, book)
					}
					return persistence.EncodeJSON(w, book)
				case formatICS:
					return ics.Export(w, meetings, ics.Options{Location: env.loc, Now: env.now(), ProductName: c.App.Name})
				default:
					return fmt.Errorf("unsupported export format %q", format)
				}
			})
		},
	}
}

func importCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "replace every meeting with the contents of FILE",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{importFormatFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("missing FILE argument")
			}
			f, err := os.Open(c.Args().Get(0))
			if err != nil {
				return err
			}
			defer f.Close()

			var book persistence.Book
			switch format := strings.ToLower(c.String(formatFlagName)); format {
			case formatJSON:
				book, err = persistence.DecodeJSON(f)
			case formatYAML:
				book, err = persistence.DecodeYAML(f)
			default:
				err = fmt.Errorf("unsupported import format %q", format)
			}
			if err != nil {
				return err
			}

			meetings, err := book.ToMeetings()
			if err != nil {
				return err
			}
			if err := env.service.Import(env.context(c), meetings); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Imported %d meeting(s).\n", len(meetings))
			return nil
		},
	}
}

func remindCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "print reminders for meetings starting soon",
		Flags: []cli.Flag{lookaheadFlag, watchFlag},
		Action: func(c *cli.Context) error {
			scanner := env.scanner(lookahead(c, env))
			out := c.App.Writer
			notify := func(_ context.Context, reminders []reminder.Reminder) {
				printReminders(out, reminders)
			}

			if c.Bool(watchFlagName) {
				return scanner.Start(env.context(c), env.cfg.ReminderCron, notify)
			}

			reminders, err := scanner.Due(env.context(c), env.now())
			if err != nil {
				return err
			}
			if len(reminders) == 0 {
				fmt.Fprintln(out, "No reminders due.")
				return nil
			}
			printReminders(out, reminders)
			return nil
		},
	}
}

func lookahead(c *cli.Context, env *environment) int {
	if c.IsSet(hoursFlagName) {
		return c.Int(hoursFlagName)
	}
	return env.cfg.ReminderHours
}

func indexArg(c *cli.Context, position int, name string) (index.Index, error) {
	if c.NArg() <= position {
		return index.Index{}, fmt.Errorf("missing %s argument", name)
	}
	idx, err := index.Parse(c.Args().Get(position))
	if err != nil {
		return index.Index{}, fmt.Errorf("%s: %w", name, err)
	}
	return idx, nil
}

func indexAndPerson(c *cli.Context) (index.Index, meeting.Person, error) {
	idx, err := indexArg(c, 0, "INDEX")
	if err != nil {
		return index.Index{}, nil, err
	}
	if c.NArg() < 2 {
		return index.Index{}, nil, errors.New("missing UUID argument")
	}
	id, err := uuid.Parse(c.Args().Get(1))
	if err != nil {
		return index.Index{}, nil, fmt.Errorf("UUID: %w", err)
	}
	return idx, meeting.PersonID(id), nil
}

func withOutput(c *cli.Context, write func(io.Writer) error) error {
	path := c.String(outputFlagName)
	if path == "" {
		return write(c.App.Writer)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
