// Package desktop delivers notifications through the operating system's
// notification service by shelling out to its command-line client.
package desktop

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/taskdue/internal/core/notify"
	"github.com/colonyops/taskdue/pkg/executil"
)

const (
	notifySend = "notify-send"
	osascript  = "osascript"
)

// Options configures a desktop Sink.
type Options struct {
	AppName string
	Timeout time.Duration // how long the alert stays visible, where supported
	GOOS    string        // defaults to runtime.GOOS
}

// Sink sends notifications with notify-send on Linux and BSDs, or
// osascript on macOS.
type Sink struct {
	exec executil.Executor
	opts Options
}

// New creates a desktop sink that runs commands through exec.
func New(exec executil.Executor, opts Options) *Sink {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.AppName == "" {
		opts.AppName = "taskdue"
	}
	return &Sink{exec: exec, opts: opts}
}

// Name returns the sink identifier.
func (s *Sink) Name() string { return "desktop" }

// Binary returns the command used on this platform, or "" if unsupported.
func (s *Sink) Binary() string {
	switch s.opts.GOOS {
	case "darwin":
		return osascript
	case "linux", "freebsd", "openbsd", "netbsd":
		return notifySend
	default:
		return ""
	}
}

// Available reports whether the platform notifier is installed.
func (s *Sink) Available() bool {
	bin := s.Binary()
	if bin == "" {
		return false
	}
	_, err := s.exec.LookPath(bin)
	return err == nil
}

// Send displays n as a desktop alert.
func (s *Sink) Send(ctx context.Context, n notify.Notification) error {
	bin := s.Binary()
	if bin == "" {
		return fmt.Errorf("desktop notifications not supported on %s", s.opts.GOOS)
	}

	if _, err := s.exec.Run(ctx, bin, s.args(n)...); err != nil {
		return fmt.Errorf("send desktop notification: %w", err)
	}
	return nil
}

func (s *Sink) args(n notify.Notification) []string {
	if s.Binary() == osascript {
		script := fmt.Sprintf("display notification %s with title %s",
			appleScriptString(n.Message), appleScriptString(n.Title))
		return []string{"-e", script}
	}

	args := []string{"--app-name", s.opts.AppName, "--urgency", urgency(n.Level)}
	if s.opts.Timeout > 0 {
		args = append(args, "--expire-time", strconv.FormatInt(s.opts.Timeout.Milliseconds(), 10))
	}
	// "--" keeps titles that start with a dash from being read as flags.
	return append(args, "--", n.Title, n.Message)
}

func urgency(l notify.Level) string {
	switch l {
	case notify.LevelError:
		return "critical"
	case notify.LevelWarning:
		return "normal"
	default:
		return "low"
	}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
