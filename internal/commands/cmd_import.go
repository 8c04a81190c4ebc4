package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/validate"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/pkg/iojson"
)

// importItem is one task in an import document.
type importItem struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"`
}

type ImportCmd struct {
	flags  *Flags
	app    *tracker.App
	reader iojson.FileReader[[]importItem]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tracker.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from a JSON document",
		UsageText: "taskdue import [-f tasks.json]",
		Description: `Reads a JSON array of tasks from --file or stdin and adds each one.

Each entry takes title, priority and due_date. Invalid entries are reported
and skipped; the rest are still added.

Example:
  echo '[{"title":"Revise DBMS","priority":"High","due_date":"2024-05-01"}]' | taskdue import`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	items, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	added, err := importTasks(ctx, cmd.app.Tasks, items)
	p.Successf("Imported %d of %d task(s)", added, len(items))
	return err
}

// importTasks adds every valid item and joins the errors of the rest.
func importTasks(ctx context.Context, tasks *tracker.TaskService, items []importItem) (int, error) {
	var (
		added int
		errs  []error
	)

	for i, item := range items {
		_, err := tasks.Add(ctx, validate.Input{Title: item.Title, Priority: item.Priority, DueDate: item.DueDate})
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		added++
	}

	return added, errors.Join(errs...)
}
