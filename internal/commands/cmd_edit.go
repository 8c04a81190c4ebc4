package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/core/validate"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/internal/tui/components"
)

type EditCmd struct {
	flags *Flags
	app   *tracker.App

	edit editFlags
}

// editFlags holds the raw edit flags. Each *Set field records whether the
// matching flag was given, so an explicit empty value can be told apart
// from an omitted flag.
type editFlags struct {
	title    string
	titleSet bool
	priority string
	prioSet  bool
	due      string
	dueSet   bool
	clearDue bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *tracker.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change a task's title, priority or due date",
		UsageText: "taskdue edit <id> [--title <title>] [--priority <priority>] [--due YYYY-MM-DD | --clear-due]",
		Description: `Updates only the fields that are given. The completion state is changed
with 'taskdue toggle'.

Without any flags an interactive form pre-filled with the task is shown.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "new title",
				Destination: &cmd.edit.title,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority (High, Medium, Low)",
				Destination: &cmd.edit.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "new due date (YYYY-MM-DD)",
				Destination: &cmd.edit.due,
			},
			&cli.BoolFlag{
				Name:        "clear-due",
				Usage:       "remove the due date",
				Destination: &cmd.edit.clearDue,
			},
		},
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	current, err := cmd.app.Tasks.Get(id)
	if err != nil {
		return err
	}

	cmd.edit.titleSet = c.IsSet("title")
	cmd.edit.prioSet = c.IsSet("priority")
	cmd.edit.dueSet = c.IsSet("due")

	var patch task.Patch
	if cmd.edit.empty() {
		if !stdinIsTerminal() {
			return fmt.Errorf("nothing to change: pass --title, --priority, --due or --clear-due")
		}
		patch, err = cmd.runForm(current)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
	} else {
		patch, err = cmd.edit.patch()
	}
	if err != nil {
		return err
	}

	if patch.IsEmpty() {
		printer.Ctx(ctx).Infof("Nothing changed")
		return nil
	}

	t, err := cmd.app.Tasks.Update(ctx, id, patch)
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Success(fmt.Sprintf("Updated task %d", t.ID), t.Title)
	return nil
}

func (cmd *EditCmd) runForm(current task.Task) (task.Patch, error) {
	in := validate.Input{
		Title:    current.Title,
		Priority: string(current.Priority),
		DueDate:  string(current.DueDate),
	}

	if err := components.NewTaskForm(fmt.Sprintf("Edit task %d", current.ID), &in).Run(); err != nil {
		return task.Patch{}, err
	}

	return in.PatchFor(current)
}

func (f editFlags) empty() bool {
	return !f.titleSet && !f.prioSet && !f.dueSet && !f.clearDue
}

// patch converts the given flags into a task patch.
func (f editFlags) patch() (task.Patch, error) {
	var p task.Patch

	if f.dueSet && f.clearDue {
		return p, fmt.Errorf("--due and --clear-due cannot be combined")
	}

	if f.titleSet {
		if err := validate.Title(f.title); err != nil {
			return p, err
		}
		p.Title = task.Set(strings.TrimSpace(f.title))
	}

	if f.prioSet {
		prio, err := task.ParsePriority(f.priority)
		if err != nil {
			return p, err
		}
		p.Priority = task.Set(prio)
	}

	switch {
	case f.clearDue:
		p.DueDate = task.Clear[task.DueDate]()
	case f.dueSet && strings.TrimSpace(f.due) == "":
		p.DueDate = task.Clear[task.DueDate]()
	case f.dueSet:
		if err := validate.DueDate(f.due); err != nil {
			return p, err
		}
		p.DueDate = task.Set(task.DueDate(strings.TrimSpace(f.due)))
	}

	return p, nil
}
