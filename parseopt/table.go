package parseopt

import (
	"fmt"
	"strings"
)

// Table is a validated, read-only option table.
type Table struct {
	opts []Option

	// number is the index of the -NUM descriptor, -1 if there is none.
	number int
}

// TableError lists every problem found in an option table.
type TableError struct {
	Bugs []string
}

func (e *TableError) Error() string {
	return strings.Join(e.Bugs, "\n")
}

// NewTable copies opts up to the first End, validates them and assigns
// mode groups. All problems are reported at once in a *TableError.
func NewTable(opts ...Option) (*Table, error) {
	t := &Table{number: -1}
	for _, o := range opts {
		if o.Kind == KindEnd {
			break
		}
		t.opts = append(t.opts, o)
	}

	if bugs := t.check(); len(bugs) > 0 {
		return nil, &TableError{Bugs: bugs}
	}

	modes := make(map[*int]int)
	for i := range t.opts {
		o := &t.opts[i]
		switch o.Kind { // exhaustive over Kind
		case KindCmdMode:
			id, ok := modes[o.Int]
			if !ok {
				id = len(modes) + 1
				modes[o.Int] = id
			}
			o.mode = id
		case KindNumber:
			// the last one wins when several are declared
			t.number = i
		case KindEnd, KindGroup, KindArgument, KindBit, KindNegBit, KindCountUp, KindSetInt,
			KindString, KindFilename, KindInteger, KindMagnitude, KindCallback, KindLowLevelCallback:
		}
	}
	return t, nil
}

// MustTable is like NewTable but panics on a table bug.
func MustTable(opts ...Option) *Table {
	t, err := NewTable(opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Options returns the descriptors in table order. The slice must not be
// modified.
func (t *Table) Options() []Option { return t.opts }

// Len returns the number of descriptors, End excluded.
func (t *Table) Len() int { return len(t.opts) }

// LongNames returns every long name in table order.
func (t *Table) LongNames() []string {
	names := make([]string, 0, len(t.opts))
	for i := range t.opts {
		if t.opts[i].Long != "" {
			names = append(names, t.opts[i].Long)
		}
	}
	return names
}

// check validates every descriptor and returns one line per problem.
func (t *Table) check() []string {
	var bugs []string
	var seen [0x80]bool

	for i := range t.opts {
		o := &t.opts[i]
		bug := func(reason string) { bugs = append(bugs, optbug(o, reason)) }

		if o.Has(FlagLastArgDefault) && o.Has(FlagOptArg) {
			bug("uses incompatible flags LastArgDefault and OptArg")
		}
		if o.Short != 0 {
			if o.Short < 0x20 || o.Short >= 0x7F {
				bug("invalid short name")
			} else if seen[o.Short] {
				bug("short name already used")
			} else {
				seen[o.Short] = true
			}
		}
		if o.Has(FlagNoDash) && (o.Has(FlagOptArg) || !o.Has(FlagNoArg) || !o.Has(FlagNoNeg) || o.Long != "") {
			bug("uses feature not supported for dashless options")
		}

		switch o.Kind { // exhaustive over Kind
		case KindCountUp, KindBit, KindNegBit, KindSetInt, KindNumber:
			if o.Has(FlagOptArg) || !o.Has(FlagNoArg) {
				bug("should not accept an argument")
			}
		case KindCmdMode:
			if !o.Has(FlagNoNeg) {
				bug("mode option must not be negatable")
			}
		case KindEnd, KindGroup, KindArgument, KindString, KindFilename,
			KindInteger, KindMagnitude, KindCallback, KindLowLevelCallback:
		}

		if missing := missingSlot(o); missing != "" {
			bug(missing)
		}
		if o.Kind == KindArgument && o.Long == "" {
			bug("argument pseudo-option needs a long name")
		}
		if !validArgHelp(o.ArgHelp) {
			bug("multi-word argh should use dash to separate words")
		}
	}
	return bugs
}

func missingSlot(o *Option) string {
	switch o.Kind { // exhaustive over Kind
	case KindBit, KindNegBit, KindCountUp, KindSetInt, KindCmdMode, KindInteger:
		if o.Int == nil {
			return "missing value slot"
		}
	case KindMagnitude:
		if o.Uint == nil {
			return "missing value slot"
		}
	case KindString, KindFilename:
		if o.Str == nil {
			return "missing value slot"
		}
	case KindCallback, KindNumber:
		if o.Callback == nil {
			return "missing callback"
		}
	case KindLowLevelCallback:
		if o.LowLevel == nil {
			return "missing callback"
		}
	case KindEnd, KindGroup, KindArgument:
	}
	return ""
}

// argh separators next to which a space is allowed, as in "<a> <b>" or
// "(a | b)".
const arghSeparators = "()<>[]|"

func validArgHelp(argh string) bool {
	if strings.IndexByte(argh, '_') >= 0 {
		return false
	}
	for i := 0; i < len(argh); i++ {
		if argh[i] != ' ' {
			continue
		}
		before := i > 0 && strings.IndexByte(arghSeparators, argh[i-1]) >= 0
		after := i+1 < len(argh) && strings.IndexByte(arghSeparators, argh[i+1]) >= 0
		if !before && !after {
			return false
		}
	}
	return true
}

func optbug(o *Option, reason string) string {
	if o.Long != "" {
		if o.Short != 0 {
			return fmt.Sprintf("BUG: switch '%c' (--%s) %s", o.Short, o.Long, reason)
		}
		return fmt.Sprintf("BUG: option '%s' %s", o.Long, reason)
	}
	if o.Short != 0 {
		return fmt.Sprintf("BUG: switch '%c' %s", o.Short, reason)
	}
	return fmt.Sprintf("BUG: %s option %s", o.Kind, reason)
}
