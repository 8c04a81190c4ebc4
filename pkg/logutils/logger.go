// Package logutils builds the process-wide zerolog logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ConsoleTarget selects human-readable logging to stderr instead of a file.
const ConsoleTarget = "-"

// New returns a logger for the given level and destination.
//
// An empty file writes JSON to stdout. ConsoleTarget writes console formatted
// lines to stderr, colored only when os.Stderr is a terminal. A nil stderr
// means os.Stderr. Any other value is a file path; the parent directory is
// created and the file is appended to.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string, stderr io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stdout
	switch file {
	case "":
	case ConsoleTarget:
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = consoleWriter(stderr)
	default:
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

func consoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: time.Kitchen,
	}
}
