// Package printer writes styled, human-oriented status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/taskdue/internal/core/styles"
)

type ctxKey struct{}

// Printer writes prefixed status messages to a writer.
type Printer struct {
	out io.Writer
}

// New creates a printer that writes to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Success prints a success line with an optional muted detail.
func (p *Printer) Success(title, detail string) {
	line := styles.SuccessStyle.Render("✔ " + title)
	if detail != "" {
		line += " " + styles.MutedStyle.Render(detail)
	}
	p.line(line)
}

// Successf prints a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render("✔ " + fmt.Sprintf(format, args...)))
}

// Infof prints a formatted informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.HeaderStyle.Render("•") + " " + fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningStyle.Render("! " + fmt.Sprintf(format, args...)))
}

// Errorf prints a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render("✘ " + fmt.Sprintf(format, args...)))
}

// Printf prints a formatted plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a bold heading.
func (p *Printer) Section(title string) {
	p.line(styles.HeaderStyle.Render(title))
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}
