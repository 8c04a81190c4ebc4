package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/tracker"
)

// TaskIDCompleter returns a ShellCompleteFunc that suggests task ids as
// positional completions. Set this as the ShellComplete field on any
// cli.Command that takes a task id argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior. Only the first positional is completed.
func TaskIDCompleter(app *tracker.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
			if args.Len() > 1 {
				return
			}
		}

		if app == nil || app.Tasks == nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range app.Tasks.Snapshot() {
			_, _ = fmt.Fprintf(w, "%s:%s\n", strconv.Itoa(t.ID), t.Title)
		}
	}
}
