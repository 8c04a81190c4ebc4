package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/validate"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/internal/tui/components"
)

type AddCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	title    string
	priority string
	due      string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tracker.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskdue add [--title <title>] [--priority High|Medium|Low] [--due YYYY-MM-DD]",
		Description: `Adds a pending task to the task list.

Without --title an interactive form is shown when running in a terminal.

Examples:
  taskdue add -t "Revise operating systems" -p high -d 2024-05-10
  taskdue add`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "task priority (High, Medium, Low)",
				Value:       "Medium",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.due,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	in := validate.Input{Title: cmd.title, Priority: cmd.priority, DueDate: cmd.due}

	if in.Title == "" {
		if !stdinIsTerminal() {
			return fmt.Errorf("--title is required when not running in a terminal")
		}
		if err := components.NewTaskForm("New task", &in).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	t, err := cmd.app.Tasks.Add(ctx, in)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	p.Success(fmt.Sprintf("Added task %d", t.ID), t.Title)
	return nil
}
