package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/commands"
	"github.com/colonyops/taskdue/internal/core/config"
	"github.com/colonyops/taskdue/internal/core/logging"
	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/pkg/executil"
	"github.com/colonyops/taskdue/pkg/logutils"
	"github.com/colonyops/taskdue/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		trackerApp = &tracker.App{}
	)

	flags := &commands.Flags{
		LogGate: utils.NewGateWriter(os.Stderr),
	}

	app := &cli.Command{
		Name:      "taskdue",
		Usage:     "Track exam-prep tasks and get reminded before they are due",
		UsageText: "taskdue [global options] command [command options]",
		Description: `taskdue keeps a small list of study tasks with a priority and an optional
due date, stored as JSON in the data directory.

Tasks due within the next 24 hours raise a desktop notification, either
from the interactive list or from 'taskdue remind' running in the background.

Run 'taskdue' with no arguments to open the interactive task list.
Run 'taskdue add -t "Revise graphs" -p High -d 2024-06-01' to add a task.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKDUE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr (defaults to <data-dir>/taskdue.log)",
				Sources:     cli.EnvVars("TASKDUE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKDUE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKDUE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Read(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Always log to a file; use explicit path or default to <datadir>/taskdue.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogPath()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile, flags.LogGate)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// 'config validate' reports problems itself
			if c.Args().First() != "config" {
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid config: %w", err)
				}
			}

			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			flags.Config = cfg

			// Populate the pre-allocated App struct (commands already hold a pointer to it).
			// Opening the store may move a corrupt task file aside, so only do it for
			// commands that read tasks.
			if !c.Bool("help") && commands.NeedsTaskStore(c.Args().Slice()) {
				*trackerApp = *tracker.NewApp(ctx, cfg, &executil.RealExecutor{}, log.Logger)
			}

			return printer.NewContext(ctx, printer.New(os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, trackerApp)

	app = commands.NewAddCmd(flags, trackerApp).Register(app)
	app = commands.NewListCmd(flags, trackerApp).Register(app)
	app = commands.NewShowCmd(flags, trackerApp).Register(app)
	app = commands.NewToggleCmd(flags, trackerApp).Register(app)
	app = commands.NewEditCmd(flags, trackerApp).Register(app)
	app = commands.NewDeleteCmd(flags, trackerApp).Register(app)
	app = commands.NewRemindCmd(flags, trackerApp).Register(app)
	app = commands.NewImportCmd(flags, trackerApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskdue --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
