package parseopt

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// matchFlags records how a descriptor was reached.
type matchFlags uint8

const (
	matchShort matchFlags = 1 << iota
	matchUnset
)

// optname spells the option the way it was matched, for messages.
func optname(opt *Option, flags matchFlags) string {
	switch {
	case flags&matchShort != 0:
		return fmt.Sprintf("switch `%c'", opt.Short)
	case flags&matchUnset != 0:
		return fmt.Sprintf("option `no-%s'", opt.Long)
	default:
		return fmt.Sprintf("option `%s'", opt.Long)
	}
}

// spelling is the token form of the match, e.g. "-c" or "--no-color".
func spelling(opt *Option, flags matchFlags) string {
	switch {
	case flags&matchShort != 0:
		return "-" + string(opt.Short)
	case flags&matchUnset != 0:
		return "--no-" + opt.Long
	default:
		return "--" + opt.Long
	}
}

func (c *Context) fail(typ ErrorType, opt *Option, flags matchFlags, reason string) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: optname(opt, flags) + " " + reason,
		Option:  spelling(opt, flags),
	}
}

// getValue applies a matched descriptor.
func (c *Context) getValue(opt *Option, flags matchFlags) error {
	unset := flags&matchUnset != 0

	if unset && c.hasPending {
		return c.fail(ErrorTypeUnexpectedValue, opt, flags, "takes no value")
	}
	if unset && opt.Has(FlagNoNeg) {
		return c.fail(ErrorTypeNegationDisallowed, opt, flags, "isn't available")
	}
	if flags&matchShort == 0 && c.hasPending && opt.Has(FlagNoArg) {
		return c.fail(ErrorTypeUnexpectedValue, opt, flags, "takes no value")
	}

	switch opt.Kind { // exhaustive over Kind
	case KindLowLevelCallback:
		return c.callbackError(opt, flags, opt.LowLevel(c, opt, unset))

	case KindBit:
		if unset {
			*opt.Int &^= opt.Default
		} else {
			*opt.Int |= opt.Default
		}
		return nil

	case KindNegBit:
		if unset {
			*opt.Int |= opt.Default
		} else {
			*opt.Int &^= opt.Default
		}
		return nil

	case KindCountUp:
		if *opt.Int < 0 {
			*opt.Int = 0
		}
		if unset {
			*opt.Int = 0
		} else {
			*opt.Int++
		}
		return nil

	case KindSetInt:
		if unset {
			*opt.Int = 0
		} else {
			*opt.Int = opt.Default
		}
		return nil

	case KindCmdMode:
		// repeating the same mode is harmless
		if *opt.Int != 0 && *opt.Int != opt.Default {
			return c.modeConflict(opt, flags)
		}
		*opt.Int = opt.Default
		return nil

	case KindString, KindFilename:
		switch {
		case unset:
			*opt.Str = ""
		case opt.Has(FlagOptArg) && !c.hasInline():
			*opt.Str = opt.DefaultArg
		default:
			v, err := c.getArg(opt, flags)
			if err != nil {
				return err
			}
			*opt.Str = v
		}
		if opt.Kind == KindFilename && !opt.Has(FlagNoPrefix) {
			*opt.Str = fixFilename(c.prefix, *opt.Str)
		}
		return nil

	case KindCallback, KindNumber:
		switch {
		case unset:
			return c.callbackError(opt, flags, opt.Callback(opt, "", true))
		case opt.Has(FlagNoArg):
			return c.callbackError(opt, flags, opt.Callback(opt, "", false))
		case opt.Has(FlagOptArg) && !c.hasInline():
			return c.callbackError(opt, flags, opt.Callback(opt, opt.DefaultArg, false))
		}
		v, err := c.getArg(opt, flags)
		if err != nil {
			return err
		}
		return c.callbackError(opt, flags, opt.Callback(opt, v, false))

	case KindInteger:
		switch {
		case unset:
			*opt.Int = 0
			return nil
		case opt.Has(FlagOptArg) && !c.hasInline():
			*opt.Int = opt.Default
			return nil
		}
		v, err := c.getArg(opt, flags)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.mismatch(opt, flags, v, "expects a numerical value", err)
		}
		*opt.Int = n
		return nil

	case KindMagnitude:
		switch {
		case unset:
			*opt.Uint = 0
			return nil
		case opt.Has(FlagOptArg) && !c.hasInline():
			*opt.Uint = uint64(max(opt.Default, 0))
			return nil
		}
		v, err := c.getArg(opt, flags)
		if err != nil {
			return err
		}
		n, ok := parseMagnitude(v)
		if !ok {
			return c.mismatch(opt, flags, v, "expects a non-negative integer value with an optional k/m/g suffix", nil)
		}
		*opt.Uint = n
		return nil

	case KindEnd, KindGroup, KindArgument:
		return &ParseError{
			Type:    ErrorTypeTableBug,
			Message: fmt.Sprintf("BUG: %s option %s cannot be applied", opt.Kind, opt.Name()),
			Option:  opt.Name(),
		}
	}
	return nil
}

// getArg resolves the raw value: attached value, last-argument default,
// then the next token.
func (c *Context) getArg(opt *Option, flags matchFlags) (string, error) {
	switch {
	case c.hasPending:
		v := c.pending
		c.pending, c.hasPending = "", false
		return v, nil
	case c.inCluster():
		v := c.cluster[c.off:]
		c.off = len(c.cluster)
		return v, nil
	case c.Remaining() == 1 && opt.Has(FlagLastArgDefault):
		return opt.DefaultArg, nil
	case c.Remaining() > 1:
		c.pos++
		return c.args[c.pos], nil
	}
	if opt.Long == "" && opt.Short != 0 {
		flags |= matchShort
	}
	return "", c.fail(ErrorTypeMissingValue, opt, flags, "requires a value")
}

func (c *Context) mismatch(opt *Option, flags matchFlags, value, reason string, cause error) *ParseError {
	err := c.fail(ErrorTypeTypeMismatch, opt, flags, reason)
	err.Message += fmt.Sprintf(", got `%s'", value)
	err.Token = value
	err.Err = cause
	return err
}

// callbackError wraps a callback failure. Parse and exit errors pass through
// untouched so a callback can report its own diagnostics or exit status.
func (c *Context) callbackError(opt *Option, flags matchFlags, err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	var exit *ExitError
	if errors.As(err, &pe) || errors.As(err, &exit) {
		return err
	}
	return &ParseError{
		Type:    ErrorTypeCallbackFailure,
		Message: optname(opt, flags) + ": " + err.Error(),
		Option:  spelling(opt, flags),
		Err:     err,
	}
}

// modeConflict names the descriptor of the same mode group that selected the
// slot's current value.
func (c *Context) modeConflict(opt *Option, flags matchFlags) *ParseError {
	err := &ParseError{Type: ErrorTypeModeConflict, Option: spelling(opt, flags)}
	for i := range c.table.opts {
		that := &c.table.opts[i]
		if that == opt || that.Kind != KindCmdMode || that.mode != opt.mode || that.Default != *opt.Int {
			continue
		}
		other := that.Name()
		err.Message = fmt.Sprintf("%s is incompatible with %s", optname(opt, flags), other)
		err.Token = other
		return err
	}
	err.Message = optname(opt, flags) + ": incompatible with something else"
	return err
}

// fixFilename joins a relative value to prefix. Empty values, absolute
// paths and "-" (stdin/stdout) are left alone.
func fixFilename(prefix, file string) string {
	if prefix == "" || file == "" || file == "-" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(prefix, file)
}

// parseMagnitude parses an unsigned integer (0x and 0 prefixes accepted)
// with an optional k, m or g binary suffix.
func parseMagnitude(s string) (uint64, bool) {
	if s == "" || strings.IndexByte(s, '-') >= 0 {
		return 0, false
	}
	var factor uint64 = 1
	switch s[len(s)-1] {
	case 'k', 'K':
		factor = 1 << 10
	case 'm', 'M':
		factor = 1 << 20
	case 'g', 'G':
		factor = 1 << 30
	}
	if factor != 1 {
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil || n > math.MaxUint64/factor {
		return 0, false
	}
	return n * factor, true
}
