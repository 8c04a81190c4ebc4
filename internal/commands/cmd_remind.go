package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/taskdue/internal/core/logging"
	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/store/jsonfile"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/pkg/iojson"
	"github.com/colonyops/taskdue/pkg/profiler"
)

type RemindCmd struct {
	flags *Flags
	app   *tracker.App

	once       bool
	jsonOutput bool
}

// NewRemindCmd creates a new remind command
func NewRemindCmd(flags *Flags, app *tracker.App) *RemindCmd {
	return &RemindCmd{flags: flags, app: app}
}

// Register adds the remind command to the application
func (cmd *RemindCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "remind",
		Usage:     "Notify about tasks that are due soon",
		UsageText: "taskdue remind [--once] [--json]",
		Description: `Scans pending tasks and raises a notification for every task due within
the reminder window (24h by default).

By default the scan repeats every reminder.interval until interrupted, and
the task file is reloaded whenever it changes on disk. With --once a single
scan runs and the due tasks are printed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "once",
				Usage:       "run a single scan and exit",
				Destination: &cmd.once,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "with --once, print due tasks as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RemindCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.once {
		return cmd.runOnce(ctx, c)
	}
	return cmd.runDaemon(ctx)
}

func (cmd *RemindCmd) runOnce(ctx context.Context, c *cli.Command) error {
	reminders := cmd.app.Reminders.Scan(ctx)

	if cmd.jsonOutput {
		due := make([]task.Task, len(reminders))
		for i, r := range reminders {
			due[i] = r.Task
		}
		return iojson.WriteLines(c.Root().Writer, due)
	}

	p := printer.Ctx(ctx)
	if len(reminders) == 0 {
		p.Infof("No tasks due within %s", cmd.app.Checker.Window())
		return nil
	}

	for _, r := range reminders {
		p.Warnf("%s", r.Notification().Message)
	}
	return nil
}

func (cmd *RemindCmd) runDaemon(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopProfiler, err := profiler.StartIfEnabled(ctx, cmd.flags.ProfilerPort, log.Logger)
	if err != nil {
		return err
	}
	defer stopProfiler()

	printer.Ctx(ctx).Infof("Watching %s for tasks due within %s (Ctrl+C to stop)",
		cmd.app.Tasks.Path(), cmd.app.Checker.Window())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return cmd.app.Reminders.Run(ctx)
	})

	watcher, err := jsonfile.NewFileWatcher(cmd.app.Tasks.Path(), logging.Component("watcher"))
	if err != nil {
		log.Warn().Err(err).Msg("task file watcher unavailable, changes made elsewhere need a restart")
	} else {
		defer func() { _ = watcher.Close() }()
		g.Go(func() error {
			return reloadOnChange(ctx, watcher.Changes(), cmd.app.Tasks)
		})
	}

	return g.Wait()
}

// reloadOnChange reloads the task file on every signal from changes until
// ctx is cancelled or changes is closed. A reload that finds an outside edit
// triggers a reminder scan through the service's external change hooks.
func reloadOnChange(ctx context.Context, changes <-chan struct{}, tasks *tracker.TaskService) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			tasks.Reload(ctx)
		}
	}
}
