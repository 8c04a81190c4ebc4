package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/internal/tui/components"
)

type DeleteCmd struct {
	flags *Flags
	app   *tracker.App

	yes bool
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags, app *tracker.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		UsageText: "taskdue delete <id> [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	t, err := cmd.app.Tasks.Get(id)
	if err != nil {
		return err
	}

	if !cmd.yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to delete without --yes when not running in a terminal")
		}

		var confirmed bool
		err := components.NewConfirmForm(fmt.Sprintf("Delete task %d?", id), t.Title, &confirmed).Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("form: %w", err)
		}
		if !confirmed {
			p.Infof("Delete cancelled")
			return nil
		}
	}

	if err := cmd.app.Tasks.Delete(ctx, id); err != nil {
		return err
	}

	p.Success(fmt.Sprintf("Deleted task %d", id), t.Title)
	return nil
}
