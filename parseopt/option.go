// Package parseopt implements a declarative command-line option parser.
//
// A program describes the options it accepts as a flat table of Option
// descriptors. The parser walks the argument vector token by token, matching
// short options (possibly bundled, as in -abc), long options (exact,
// abbreviated or negated with a no- prefix), dashless single-character
// options and numeric options such as -3. Matched values are type-checked and
// written through caller-owned slots or handed to callbacks. Everything else
// is left in place as operands.
//
// The parse is an explicit state machine (Context.Step) so callers can stop on
// help or unknown options, act, and resume. Parser wraps it in the usual
// one-shot entry point that prints diagnostics and usage.
package parseopt

import "github.com/dzonerzy/go-parseopt/middleware"

// Kind identifies how a descriptor is matched and what it does on match.
type Kind int

const (
	KindEnd Kind = iota
	KindGroup
	KindArgument
	KindBit
	KindNegBit
	KindCmdMode
	KindCountUp
	KindSetInt
	KindString
	KindFilename
	KindInteger
	KindMagnitude
	KindCallback
	KindLowLevelCallback
	KindNumber
)

var kindNames = [...]string{
	KindEnd:              "end",
	KindGroup:            "group",
	KindArgument:         "argument",
	KindBit:              "bit",
	KindNegBit:           "negbit",
	KindCmdMode:          "cmdmode",
	KindCountUp:          "countup",
	KindSetInt:           "setint",
	KindString:           "string",
	KindFilename:         "filename",
	KindInteger:          "integer",
	KindMagnitude:        "magnitude",
	KindCallback:         "callback",
	KindLowLevelCallback: "lowlevel-callback",
	KindNumber:           "number",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Flag modifies how a descriptor is matched, rendered or completed.
type Flag uint16

const (
	// FlagOptArg makes the value optional; it is only taken when attached
	// (--opt=value or -ovalue).
	FlagOptArg Flag = 1 << iota
	// FlagNoArg marks a descriptor that never takes a value.
	FlagNoArg
	// FlagNoNeg rejects the --no-name form.
	FlagNoNeg
	// FlagHidden omits the descriptor from help unless --help-all is given.
	FlagHidden
	// FlagLastArgDefault uses DefaultArg when the option is the last token.
	FlagLastArgDefault
	// FlagNoDash lets a single-character option match without a dash.
	FlagNoDash
	// FlagLiteralArgHelp prints ArgHelp verbatim, without <>.
	FlagLiteralArgHelp
	// FlagNoComplete omits the descriptor from completion listings.
	FlagNoComplete
	// FlagCompArg lists the descriptor as --name= in completion.
	FlagCompArg
	// FlagNoPrefix stores a filename value verbatim.
	FlagNoPrefix
)

// CallbackFunc receives the value of a KindCallback or KindNumber option.
// unset is true for the negated form. For an optional value that was not
// given, arg is the descriptor's DefaultArg.
type CallbackFunc func(opt *Option, arg string, unset bool) error

// LowLevelFunc runs with direct access to the parse context. It may pull a
// value with Context.NextArg or leave the cursor alone.
type LowLevelFunc func(ctx *Context, opt *Option, unset bool) error

// Option is one row of an option table.
type Option struct {
	Kind  Kind
	Short rune
	Long  string

	// Value slots. Which one is used depends on Kind.
	Int  *int
	Uint *uint64
	Str  *string

	// Default is the mask (bit kinds), the mode (cmdmode), the value
	// (setint) or the optional-value default (integer, magnitude).
	Default int
	// DefaultArg is the optional-value default for string, filename and
	// callback kinds, and the value FlagLastArgDefault supplies.
	DefaultArg string

	Callback CallbackFunc
	LowLevel LowLevelFunc

	Flags   Flag
	ArgHelp string
	Help    string

	// mode groups cmdmode descriptors that share a slot; 0 means none.
	mode int
}

var _ middleware.Option = (*Option)(nil)

// Name returns "--long" when the option has a long name and "-c" otherwise.
func (o *Option) Name() string {
	switch {
	case o.Long != "":
		return "--" + o.Long
	case o.Short != 0:
		return "-" + string(o.Short)
	case o.Kind == KindNumber:
		return "-NUM"
	default:
		return ""
	}
}

// Has reports whether all bits of f are set.
func (o *Option) Has(f Flag) bool { return o.Flags&f == f }

// With returns a copy of o with the given flags added.
func (o Option) With(f Flag) Option {
	o.Flags |= f
	return o
}

// WithDefault returns a copy of o whose optional or last-argument value
// defaults to arg.
func (o Option) WithDefault(arg string) Option {
	o.DefaultArg = arg
	return o
}

// WithDefaultInt returns a copy of o with Default set to n.
func (o Option) WithDefaultInt(n int) Option {
	o.Default = n
	return o
}

// Table constructors

// End terminates a table. NewTable ignores everything after it.
func End() Option { return Option{Kind: KindEnd} }

// Group starts a new section in the help output.
func Group(heading string) Option { return Option{Kind: KindGroup, Help: heading} }

// Argument is a pseudo-option: when --long is given exactly it is forwarded
// untouched into the recognized region.
func Argument(long, help string) Option {
	return Option{Kind: KindArgument, Long: long, Help: help, Flags: FlagNoArg}
}

// Bit ORs mask into *v; the negated form clears it.
func Bit(short rune, long string, v *int, mask int, help string) Option {
	return Option{Kind: KindBit, Short: short, Long: long, Int: v, Default: mask, Help: help, Flags: FlagNoArg}
}

// NegBit clears mask in *v; the negated form sets it.
func NegBit(short rune, long string, v *int, mask int, help string) Option {
	return Option{Kind: KindNegBit, Short: short, Long: long, Int: v, Default: mask, Help: help, Flags: FlagNoArg}
}

// Bool sets *v to 1, or 0 when negated.
func Bool(short rune, long string, v *int, help string) Option {
	return Bit(short, long, v, 1, help)
}

// CountUp increments *v on every occurrence; the negated form resets it.
func CountUp(short rune, long string, v *int, help string) Option {
	return Option{Kind: KindCountUp, Short: short, Long: long, Int: v, Help: help, Flags: FlagNoArg}
}

// SetInt writes val into *v, or 0 when negated.
func SetInt(short rune, long string, v *int, val int, help string) Option {
	return Option{Kind: KindSetInt, Short: short, Long: long, Int: v, Default: val, Help: help, Flags: FlagNoArg}
}

// CmdMode selects mode in *v. Descriptors sharing v are mutually exclusive.
func CmdMode(short rune, long string, v *int, mode int, help string) Option {
	return Option{Kind: KindCmdMode, Short: short, Long: long, Int: v, Default: mode, Help: help, Flags: FlagNoArg | FlagNoNeg}
}

// String stores the value in *v.
func String(short rune, long string, v *string, argh, help string) Option {
	return Option{Kind: KindString, Short: short, Long: long, Str: v, ArgHelp: argh, Help: help}
}

// Filename stores the value in *v, rewritten against the parse prefix.
func Filename(short rune, long string, v *string, help string) Option {
	return Option{Kind: KindFilename, Short: short, Long: long, Str: v, ArgHelp: "file", Help: help}
}

// Integer parses a base-10 integer into *v.
func Integer(short rune, long string, v *int, help string) Option {
	return Option{Kind: KindInteger, Short: short, Long: long, Int: v, ArgHelp: "n", Help: help}
}

// Magnitude parses a non-negative integer with an optional k, m or g suffix.
func Magnitude(short rune, long string, v *uint64, help string) Option {
	return Option{Kind: KindMagnitude, Short: short, Long: long, Uint: v, ArgHelp: "n", Help: help}
}

// CallbackOpt hands the value to cb.
func CallbackOpt(short rune, long string, argh, help string, cb CallbackFunc) Option {
	return Option{Kind: KindCallback, Short: short, Long: long, ArgHelp: argh, Help: help, Callback: cb}
}

// LowLevelCallbackOpt runs fn with the parse context.
func LowLevelCallbackOpt(short rune, long string, argh, help string, fn LowLevelFunc) Option {
	return Option{Kind: KindLowLevelCallback, Short: short, Long: long, ArgHelp: argh, Help: help, LowLevel: fn}
}

// Number matches -NUM: a run of digits right after a dash, as in -3.
func Number(help string, cb CallbackFunc) Option {
	return Option{Kind: KindNumber, Help: help, Callback: cb, Flags: FlagNoArg | FlagNoNeg}
}
