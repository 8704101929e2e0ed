//nolint:testpackage // using package name 'parseopt' to access unexported fields for testing
package parseopt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func helpTable() *Table {
	var v, secret, x int
	var out, color, long string
	var mem uint64
	return MustTable(
		CountUp('v', "verbose", &v, "be more verbose"),
		Group("Output"),
		String('o', "output", &out, "file", "write to <file>"),
		String(0, "color", &color, "when", "colorize").With(FlagOptArg),
		Magnitude(0, "window-memory", &mem, "limit memory"),
		Number("show n entries", func(*Option, string, bool) error { return nil }),
		Bool(0, "secret", &secret, "hidden").With(FlagHidden),
		Bool('x', "", &x, "dashless").With(FlagNoDash|FlagNoNeg),
		String(0, "a-very-long-option-name", &long, "value", "long help"),
	)
}

// line pads an option column to the help width and appends help.
func line(opts, help string) string {
	return opts + strings.Repeat(" ", usageOptsWidth-len(opts)+usageGap) + help + "\n"
}

func TestTextHelp(t *testing.T) {
	usage := []string{"prog [<options>] <file>...", "prog --stdin", "", "Extra text"}

	common := func(hidden bool) string {
		var b strings.Builder
		b.WriteString("usage: prog [<options>] <file>...\n")
		b.WriteString("   or: prog --stdin\n")
		b.WriteString("\n")
		b.WriteString("    Extra text\n")
		b.WriteString("\n")
		b.WriteString(line("    -v, --verbose", "be more verbose"))
		b.WriteString("\n")
		b.WriteString("Output\n")
		b.WriteString(line("    -o, --output <file>", "write to <file>"))
		b.WriteString(line("    --color[=<when>]", "colorize"))
		b.WriteString(line("    --window-memory <n>", "limit memory"))
		b.WriteString(line("    -NUM", "show n entries"))
		if hidden {
			b.WriteString(line("    --secret", "hidden"))
		}
		b.WriteString(line("    x", "dashless"))
		b.WriteString("    --a-very-long-option-name <value>\n")
		b.WriteString(strings.Repeat(" ", usageOptsWidth+usageGap) + "long help\n")
		b.WriteString("\n")
		return b.String()
	}

	tests := []struct {
		name   string
		reason Reason
		want   string
	}{
		{"requested", ReasonRequested, common(false)},
		{"error", ReasonError, common(false)},
		{"help-all", ReasonHelpAll, common(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (TextHelp{}).Render(&buf, usage, helpTable(), tt.reason); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("help mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextHelpWithoutUsage(t *testing.T) {
	var buf bytes.Buffer
	if err := (TextHelp{}).Render(&buf, nil, helpTable(), ReasonRequested); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output without usage lines, got %q", buf.String())
	}
}

func TestArgHelp(t *testing.T) {
	var s string
	tests := []struct {
		opt  Option
		want string
	}{
		{String(0, "out", &s, "file", ""), " <file>"},
		{String('o', "", &s, "file", "").With(FlagOptArg), "[<file>]"},
		{String(0, "out", &s, "file", "").With(FlagOptArg), "[=<file>]"},
		{String(0, "out", &s, "", ""), " ..."},
		{String(0, "out", &s, "<a> <b>", ""), " <a> <b>"},
		{String(0, "out", &s, "FILE", "").With(FlagLiteralArgHelp), " FILE"},
	}
	for _, tt := range tests {
		if got := argHelp(&tt.opt); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestHelpFunc(t *testing.T) {
	var got Reason = -1
	var r HelpRenderer = HelpFunc(func(w io.Writer, _ []string, _ *Table, reason Reason) error {
		got = reason
		_, err := io.WriteString(w, "custom\n")
		return err
	})
	var buf bytes.Buffer
	if err := r.Render(&buf, nil, MustTable(), ReasonNoArgs); err != nil {
		t.Fatal(err)
	}
	if got != ReasonNoArgs || buf.String() != "custom\n" {
		t.Errorf("Expected the function to run with ReasonNoArgs, got %d %q", got, buf.String())
	}
}

func TestCompletion(t *testing.T) {
	var v, e, m, secret, quiet int
	var out, color string
	lowlevel := func(*Context, *Option, bool) error { return nil }

	tests := []struct {
		name  string
		table *Table
		want  string
	}{
		{
			name: "mixed",
			table: MustTable(
				Bool('v', "verbose", &v, ""),
				String('o', "output", &out, "file", ""),
				Bool(0, "no-edit", &e, ""),
				CmdMode(0, "list", &m, 1, ""),
				String(0, "color", &color, "when", "").With(FlagOptArg),
				Bool(0, "secret", &secret, "").With(FlagHidden),
				Bool(0, "quiet", &quiet, "").With(FlagNoComplete),
				LowLevelCallbackOpt(0, "raw", "", "", lowlevel).With(FlagCompArg),
			),
			want: " --verbose --output= --no-edit --list --color --raw= --edit -- --no-verbose --no-output --no-color\n",
		},
		{
			name: "no negative names",
			table: MustTable(
				Bool(0, "all", &v, ""),
				Bool(0, "both", &v, ""),
				Bool(0, "cat", &v, ""),
			),
			want: " --all --both --cat --no-all -- --no-both --no-cat\n",
		},
		{
			name:  "empty",
			table: MustTable(),
			want:  "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Completion(&buf, tt.table); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("completion mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletionItemsBounded(t *testing.T) {
	if _, maxSize := completionItems.Stats(); maxSize != 2 {
		t.Errorf("Expected the completion pool to keep 2 slices, got %d", maxSize)
	}
}
