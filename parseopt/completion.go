package parseopt

import (
	"io"
	"strings"

	"github.com/dzonerzy/go-parseopt/internal/pool"
)

var completionItems = newCompletionItems()

func newCompletionItems() *pool.TokenSlice {
	p := pool.NewTokenSlicePool(32)
	p.SetMaxSize(2)
	return p
}

// Completion writes the long options of t on one line, for shell completion
// scripts: every visible option first (with a trailing "=" when a value is
// required), then the positive forms of no- options, then --no-name forms.
// Only the first --no-name form precedes a lone "--"; the rest follow it, so
// scripts can offer them once the user has typed --no.
func Completion(w io.Writer, t *Table) error {
	items := completionItems.Get()
	defer completionItems.Put(items)

	noOpts := 0
	for i := range t.opts {
		opt := &t.opts[i]
		if !completable(opt) || opt.Kind == KindGroup {
			continue
		}
		suffix := ""
		if needsValue(opt) || opt.Has(FlagCompArg) {
			suffix = "="
		}
		if strings.HasPrefix(opt.Long, "no-") {
			noOpts++
		}
		*items = append(*items, "--"+opt.Long+suffix)
	}

	for i := range t.opts {
		opt := &t.opts[i]
		if name, ok := strings.CutPrefix(opt.Long, "no-"); ok && hasUnsetForm(opt) {
			*items = append(*items, "--"+name)
		}
	}

	printedDashDash := false
	for i := range t.opts {
		opt := &t.opts[i]
		if !hasUnsetForm(opt) || strings.HasPrefix(opt.Long, "no-") {
			continue
		}
		if noOpts > 0 && !printedDashDash {
			*items = append(*items, "--")
			printedDashDash = true
		}
		*items = append(*items, "--no-"+opt.Long)
		noOpts++
	}

	b := pool.GetBuilder()
	defer pool.PutBuilder(b)
	for _, item := range *items {
		b.WriteByte(' ')
		b.WriteString(item)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func completable(opt *Option) bool {
	return opt.Long != "" && opt.Flags&(FlagHidden|FlagNoComplete) == 0
}

// needsValue reports whether the option always takes a value.
func needsValue(opt *Option) bool {
	switch opt.Kind { // exhaustive over Kind
	case KindString, KindFilename, KindInteger, KindMagnitude, KindCallback:
		return opt.Flags&(FlagNoArg|FlagOptArg|FlagLastArgDefault) == 0
	case KindEnd, KindGroup, KindArgument, KindBit, KindNegBit, KindCmdMode, KindCountUp,
		KindSetInt, KindLowLevelCallback, KindNumber:
	}
	return false
}

// hasUnsetForm reports whether --no-name should be offered.
func hasUnsetForm(opt *Option) bool {
	if !completable(opt) || opt.Has(FlagNoNeg) {
		return false
	}
	switch opt.Kind { // exhaustive over Kind
	case KindString, KindFilename, KindInteger, KindMagnitude, KindCallback,
		KindBit, KindNegBit, KindCountUp, KindSetInt:
		return true
	case KindEnd, KindGroup, KindArgument, KindCmdMode, KindLowLevelCallback, KindNumber:
	}
	return false
}
