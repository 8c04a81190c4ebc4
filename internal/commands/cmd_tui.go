package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/internal/tui"
	"github.com/colonyops/taskdue/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *tracker.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TASKDUE_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive task list",
		Description: `Opens the full-screen task list. This is also what runs when taskdue is
started without a subcommand.

Tasks due within the reminder window show up as toasts while the TUI is
open, and edits made to the task file elsewhere are picked up live.`,
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	stopProfiler, err := profiler.StartIfEnabled(ctx, cmd.flags.ProfilerPort, log.Logger)
	if err != nil {
		return err
	}
	defer stopProfiler()

	if cmd.flags.LogGate != nil {
		cmd.flags.LogGate.Hold()
		defer func() { _ = cmd.flags.LogGate.Release() }()
	}

	return tui.Run(ctx, cmd.app, log.Logger)
}
