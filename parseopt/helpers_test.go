//nolint:testpackage // using package name 'parseopt' to access unexported fields for testing
package parseopt

import (
	"bytes"
	"testing"

	"github.com/google/shlex"

	optio "github.com/dzonerzy/go-parseopt/io"
)

// argv splits a shell-style command line into tokens.
func argv(t *testing.T, line string) []string {
	t.Helper()
	args, err := shlex.Split(line)
	if err != nil {
		t.Fatalf("cannot split %q: %v", line, err)
	}
	return args
}

// stepOnce starts a context over line and runs a single Step.
func stepOnce(t *testing.T, tbl *Table, b Behavior, line string) (*Context, State, error) {
	t.Helper()
	ctx, err := Start(tbl, argv(t, line), "", b)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	state, err := ctx.Step()
	return ctx, state, err
}

// parseAll runs a context to StateDone and fails on anything else.
func parseAll(t *testing.T, tbl *Table, b Behavior, line string) []string {
	t.Helper()
	ctx, state, err := stepOnce(t, tbl, b, line)
	if state != StateDone || err != nil {
		t.Fatalf("parsing %q: expected done, got %s (%v)", line, state, err)
	}
	return ctx.End()
}

// expectError runs one step and checks the error category.
func expectError(t *testing.T, tbl *Table, line string, want ErrorType) *ParseError {
	t.Helper()
	_, _, err := stepOnce(t, tbl, 0, line)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("parsing %q: expected *ParseError, got %T (%v)", line, err, err)
	}
	if pe.Type != want {
		t.Fatalf("parsing %q: expected %s, got %s (%s)", line, want, pe.Type, pe.Message)
	}
	return pe
}

// newTestParser returns a parser writing to buffers without color.
func newTestParser(tbl *Table) (*Parser, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	p := NewParser("prog", tbl)
	p.IO().WithOut(&out).WithErr(&errb).NoColor()
	p.logger = optio.NewLogger(p.IO()).Debug(false)
	return p, &out, &errb
}
