package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
)

type ToggleCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *tracker.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "toggle",
		Aliases:       []string{"done"},
		Usage:         "Flip a task between pending and completed",
		UsageText:     "taskdue toggle <id>",
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	t, err := cmd.app.Tasks.Toggle(ctx, id)
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Success(fmt.Sprintf("Task %d is now %s", t.ID, t.Status()), t.Title)
	return nil
}
