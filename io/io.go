// Package optio owns the writers and terminal capabilities used when a parse
// ends in a diagnostic, a usage screen or a completion listing.
package optio

import (
	stdio "io"
	"os"

	"github.com/mattn/go-isatty"
)

// IOManager centralizes IO and terminal capabilities
type IOManager struct {
	out stdio.Writer
	err stdio.Writer

	forceColor bool
	noColor    bool
}

// New returns a manager bound to process stdio
func New() *IOManager {
	return &IOManager{out: os.Stdout, err: os.Stderr}
}

// WithOut sets the standard output writer and returns the manager for chaining.
func (m *IOManager) WithOut(w stdio.Writer) *IOManager { m.out = w; return m }

// WithErr sets the standard error writer and returns the manager for chaining.
func (m *IOManager) WithErr(w stdio.Writer) *IOManager { m.err = w; return m }

// ForceColor forces color output on, regardless of environment.
func (m *IOManager) ForceColor() *IOManager { m.forceColor = true; m.noColor = false; return m }

// NoColor disables color output, regardless of environment.
func (m *IOManager) NoColor() *IOManager { m.noColor = true; m.forceColor = false; return m }

// Out returns the configured standard output writer.
func (m *IOManager) Out() stdio.Writer { return m.out }

// Err returns the configured standard error writer.
func (m *IOManager) Err() stdio.Writer { return m.err }

// IsTTY reports whether w is a terminal. Writers that are not files never are.
func IsTTY(w stdio.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SupportsColor reports whether ANSI sequences should be written to w.
// NO_COLOR wins over FORCE_COLOR; both lose to an explicit ForceColor/NoColor.
func (m *IOManager) SupportsColor(w stdio.Writer) bool {
	if m.noColor {
		return false
	}
	if m.forceColor {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !IsTTY(w) {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// Colorize wraps s with the given ANSI SGR code when w supports color.
func (m *IOManager) Colorize(w stdio.Writer, s, code string) string {
	if code == "" || !m.SupportsColor(w) {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// Bold returns s in bold when w supports color.
func (m *IOManager) Bold(w stdio.Writer, s string) string { return m.Colorize(w, s, "1") }
