package parseopt

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-parseopt/internal/pool"
)

// Reason tells a HelpRenderer why usage is being shown.
type Reason int

const (
	// ReasonRequested is -h or --help.
	ReasonRequested Reason = iota
	// ReasonHelpAll is --help-all; hidden options are shown too.
	ReasonHelpAll
	// ReasonNoArgs is a command run without arguments that requires some.
	ReasonNoArgs
	// ReasonError follows a diagnostic on stderr.
	ReasonError
)

// HelpRenderer formats usage text for a table. It never influences parsing.
type HelpRenderer interface {
	Render(w io.Writer, usage []string, t *Table, reason Reason) error
}

// HelpFunc adapts a function to HelpRenderer.
type HelpFunc func(w io.Writer, usage []string, t *Table, reason Reason) error

func (f HelpFunc) Render(w io.Writer, usage []string, t *Table, reason Reason) error {
	return f(w, usage, t, reason)
}

const (
	usageOptsWidth = 24
	usageGap       = 2
)

// TextHelp renders the classic layout:
//
//	usage: prog [<options>] <file>...
//	   or: prog --stdin
//
//	    -v, --verbose         be verbose
//	    --depth <n>           history depth
//
// The first usage line gets "usage: ", following non-empty lines "   or: "
// up to the first empty line; anything after that is indented free text.
type TextHelp struct{}

func (TextHelp) Render(w io.Writer, usage []string, t *Table, reason Reason) error {
	if len(usage) == 0 {
		return nil
	}
	full := reason == ReasonHelpAll

	b := pool.GetBuilder()
	defer pool.PutBuilder(b)

	b.WriteString("usage: ")
	b.WriteString(usage[0])
	b.WriteByte('\n')
	rest := usage[1:]
	for len(rest) > 0 && rest[0] != "" {
		b.WriteString("   or: ")
		b.WriteString(rest[0])
		b.WriteByte('\n')
		rest = rest[1:]
	}
	for _, line := range rest {
		if line != "" {
			b.WriteString("    ")
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	needNewline := true
	for i := range t.opts {
		opt := &t.opts[i]
		if opt.Kind == KindGroup {
			b.WriteByte('\n')
			needNewline = false
			if opt.Help != "" {
				b.WriteString(opt.Help)
				b.WriteByte('\n')
			}
			continue
		}
		if !full && opt.Has(FlagHidden) {
			continue
		}
		if needNewline {
			b.WriteByte('\n')
			needNewline = false
		}
		writeOptionLine(b, opt)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func writeOptionLine(b *strings.Builder, opt *Option) {
	start := b.Len()
	b.WriteString("    ")
	if opt.Short != 0 {
		if !opt.Has(FlagNoDash) {
			b.WriteByte('-')
		}
		b.WriteRune(opt.Short)
	}
	if opt.Long != "" && opt.Short != 0 {
		b.WriteString(", ")
	}
	if opt.Long != "" {
		b.WriteString("--")
		b.WriteString(opt.Long)
	}
	if opt.Kind == KindNumber {
		b.WriteString("-NUM")
	}
	if opt.Has(FlagLiteralArgHelp) || !opt.Has(FlagNoArg) {
		b.WriteString(argHelp(opt))
	}

	pos := utf8.RuneCountInString(b.String()[start:])
	pad := usageOptsWidth - pos
	if pos > usageOptsWidth {
		b.WriteByte('\n')
		pad = usageOptsWidth
	}
	b.WriteString(strings.Repeat(" ", pad+usageGap))
	b.WriteString(opt.Help)
	b.WriteByte('\n')
}

// argHelp formats the value placeholder: " <n>", "[=<when>]" or "[<n>]".
// A placeholder that already contains ()<>[]| is printed as is.
func argHelp(opt *Option) string {
	argh := opt.ArgHelp
	literal := opt.Has(FlagLiteralArgHelp) || argh == "" || strings.ContainsAny(argh, "()<>[]|")
	if argh == "" {
		argh = "..."
	}
	if !literal {
		argh = "<" + argh + ">"
	}
	switch {
	case opt.Has(FlagOptArg) && opt.Long != "":
		return "[=" + argh + "]"
	case opt.Has(FlagOptArg):
		return "[" + argh + "]"
	default:
		return " " + argh
	}
}
