package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/pkg/iojson"
)

type ListCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	sort       string
	jsonOutput bool
	pending    bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *tracker.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "taskdue list [--sort priority|due_date|none] [--pending] [--json]",
		Description: `Displays all tasks as a table.

Output is JSON lines when --json is set or stdout is not a terminal.
The sort defaults to default_sort from the config file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "sort",
				Aliases:     []string{"s"},
				Usage:       "sort key (priority, due_date, none)",
				Destination: &cmd.sort,
			},
			&cli.BoolFlag{
				Name:        "pending",
				Usage:       "hide completed tasks",
				Destination: &cmd.pending,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(_ context.Context, c *cli.Command) error {
	key := cmd.app.Config.DefaultSort
	if cmd.sort != "" {
		key = task.SortKey(cmd.sort)
	}

	tasks := cmd.app.Tasks.List(key)
	if cmd.pending {
		tasks = pendingOnly(tasks)
	}

	out := c.Root().Writer

	if cmd.jsonOutput || !isTerminal(out) {
		return iojson.WriteLines(out, tasks)
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	return renderTable(out, tasks)
}

func pendingOnly(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func renderTable(w io.Writer, tasks []task.Task) error {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Title,
			string(t.Priority),
			t.DueDate.String(),
			t.Status(),
			t.CreatedAt,
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.MutedStyle).
		Headers("ID", "TITLE", "PRIORITY", "DUE", "STATUS", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}

			t := tasks[row]
			switch {
			case col == 2:
				return styles.TableCellStyle.Foreground(styles.PriorityColor(t.Priority))
			case t.Completed:
				return styles.TableCellStyle.Foreground(styles.ColorMuted)
			default:
				return styles.TableCellStyle
			}
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
