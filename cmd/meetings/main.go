// Command meetings manages a list of meetings from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(os.Stdout, os.Stderr, time.Now)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer, now func() time.Time) *cli.App {
	env := &environment{clock: now}

	app := cli.NewApp()
	app.Name = "meetings"
	app.Usage = "plan meetings, their participants and recurrences"
	app.Version = Version
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = []cli.Flag{
		configFlag,
		storageFlag,
		dataFileFlag,
		sqliteDSNFlag,
		logLevelFlag,
	}
	app.Before = env.setup
	app.After = env.close
	app.Commands = []*cli.Command{
		addCommand(env),
		listCommand(env),
		deleteCommand(env),
		occurrencesCommand(env),
		participantCommand(env),
		upcomingCommand(env),
		agendaCommand(env),
		exportCommand(env),
		importCommand(env),
		remindCommand(env),
	}
	return app
}
