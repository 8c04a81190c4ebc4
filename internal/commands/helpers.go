package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether interactive forms can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// taskIDArg parses the first positional argument as a task id.
func taskIDArg(c *cli.Command) (int, error) {
	if c.Args().Len() == 0 {
		return 0, fmt.Errorf("missing task id")
	}

	raw := c.Args().First()
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", raw)
	}
	return id, nil
}
