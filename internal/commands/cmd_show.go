package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/tracker"
)

type ShowCmd struct {
	flags *Flags
	app   *tracker.App

	raw bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *tracker.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a single task",
		UsageText: "taskdue show <id> [--raw]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without terminal styling",
				Destination: &cmd.raw,
			},
		},
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(_ context.Context, c *cli.Command) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}

	t, err := cmd.app.Tasks.Get(id)
	if err != nil {
		return err
	}

	md := taskMarkdown(t, time.Now())
	out := c.Root().Writer

	if cmd.raw || !isTerminal(out) {
		_, err := fmt.Fprint(out, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render task: %w", err)
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}

// taskMarkdown renders t as a markdown card.
func taskMarkdown(t task.Task, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | %d |\n", t.ID)
	fmt.Fprintf(&b, "| Priority | %s |\n", t.Priority)
	fmt.Fprintf(&b, "| Due | %s |\n", t.DueDate)
	fmt.Fprintf(&b, "| Status | %s |\n", t.Status())
	fmt.Fprintf(&b, "| Created | %s |\n", t.CreatedAt)

	if hint := dueHint(t, now); hint != "" {
		fmt.Fprintf(&b, "\n> %s\n", hint)
	}

	return b.String()
}

// dueHint describes how far away the due date is, relative to the start of today.
func dueHint(t task.Task, now time.Time) string {
	if t.Completed || !t.DueDate.IsSet() {
		return ""
	}

	due, err := t.DueDate.Time(now.Location())
	if err != nil {
		return fmt.Sprintf("Due date %q is not a valid date", string(t.DueDate))
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return fmt.Sprintf("Overdue by %d day(s)", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}
