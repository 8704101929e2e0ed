package parseopt

import (
	"fmt"
	"strings"
)

// Step reads tokens until something needs the caller's attention:
//
//   - StateDone: tokens are exhausted or "--" was reached.
//   - StateNonOption: an operand was met under StopAtNonOption. The cursor
//     stays on it.
//   - StateHelp: -h, --help or --help-all was given, or a long option was
//     ambiguous (the error is returned). The cursor has moved past the token.
//   - StateComplete: the sole argument was CompletionHelper.
//   - StateUnknown: an unknown option was met; the error describes it and
//     the cursor stays on it so the caller can Keep or Skip it.
//   - StateError: an option was rejected.
//
// Step may be called again after any state but StateDone to resume scanning.
func (c *Context) Step() (State, error) {
	if c.state == StateDone {
		return StateDone, nil
	}
	internalHelp := c.behavior&NoInternalHelp == 0

	for ; c.pos < len(c.args); c.pos++ {
		c.resetToken()
		state, err := c.token(c.args[c.pos], internalHelp)
		switch state { // exhaustive over State
		case StateScanning:
			continue
		case StateUnknown:
			if c.behavior&KeepUnknown != 0 {
				c.forward(c.args[c.pos])
				continue
			}
			return c.finish(StateUnknown, err)
		case StateDone, StateError, StateNonOption, StateHelp, StateComplete:
			return c.finish(state, err)
		}
	}
	return c.finish(StateDone, nil)
}

func (c *Context) finish(s State, err error) (State, error) {
	c.state = s
	return s, err
}

// token classifies one token and applies it. StateScanning means the token
// was consumed; StateUnknown that nothing matched it.
func (c *Context) token(arg string, internalHelp bool) (State, error) {
	if len(arg) < 2 || arg[0] != '-' {
		ok, err := c.parseNoDash(arg)
		switch {
		case err != nil:
			return StateError, err
		case ok:
			return StateScanning, nil
		case c.behavior&StopAtNonOption != 0:
			return StateNonOption, nil
		}
		c.forward(arg)
		return StateScanning, nil
	}

	if internalHelp && c.total == 1 && arg == "-h" {
		c.pos++
		return StateHelp, nil
	}
	if c.total == 1 && arg == CompletionHelper {
		c.pos++
		return StateComplete, nil
	}

	if arg[1] != '-' {
		return c.shortCluster(arg, internalHelp)
	}

	if arg == "--" {
		if c.behavior&KeepDashDash == 0 {
			c.pos++
		}
		return StateDone, nil
	}

	if internalHelp && (arg == "--help" || arg == "--help-all") {
		c.showHidden = arg == "--help-all"
		c.pos++
		return StateHelp, nil
	}

	found, err := c.parseLong(arg[2:])
	switch {
	case err != nil:
		if pe, ok := err.(*ParseError); ok && pe.Type == ErrorTypeAmbiguousOption {
			c.pos++
			return StateHelp, err
		}
		return StateError, err
	case !found:
		return StateUnknown, c.unknownError(arg)
	}
	return StateScanning, nil
}

// shortCluster consumes a token such as -abc one switch at a time.
func (c *Context) shortCluster(arg string, internalHelp bool) (State, error) {
	c.cluster, c.off = arg, 1

	found, err := c.parseShort()
	switch {
	case err != nil:
		return StateError, err
	case !found:
		if err := c.checkTypos(arg[1:]); err != nil {
			return StateError, err
		}
		if internalHelp && c.cluster[c.off] == 'h' {
			c.pos++
			return StateHelp, nil
		}
		return StateUnknown, c.unknownError(arg)
	}

	if c.inCluster() {
		if err := c.checkTypos(arg[1:]); err != nil {
			return StateError, err
		}
	}
	for c.inCluster() {
		found, err := c.parseShort()
		switch {
		case err != nil:
			return StateError, err
		case !found:
			if internalHelp && c.cluster[c.off] == 'h' {
				c.pos++
				return StateHelp, nil
			}
			// hide the switches already consumed from the unknown path
			c.args[c.pos] = "-" + c.cluster[c.off:]
			return StateUnknown, c.unknownError(c.args[c.pos])
		}
	}
	return StateScanning, nil
}

// parseShort matches the switch at c.off.
func (c *Context) parseShort() (bool, error) {
	ch := c.cluster[c.off]
	for i := range c.table.opts {
		opt := &c.table.opts[i]
		if opt.Short != 0 && opt.Short == rune(ch) {
			c.off++
			return true, c.getValue(opt, matchShort)
		}
	}

	// explicit one-digit switches take precedence over -NUM
	if c.table.number >= 0 && isDigit(ch) {
		end := c.off + 1
		for end < len(c.cluster) && isDigit(c.cluster[end]) {
			end++
		}
		digits := c.cluster[c.off:end]
		c.off = end
		numopt := &c.table.opts[c.table.number]
		return true, c.callbackError(numopt, matchShort, numopt.Callback(numopt, digits, false))
	}
	return false, nil
}

// parseLong matches arg, the token without its leading "--". Exact matches
// win at once; abbreviations are collected over the whole table so that
// ambiguity is always detected.
func (c *Context) parseLong(arg string) (bool, error) {
	argEnd := strings.IndexByte(arg, '=')
	if argEnd < 0 {
		argEnd = len(arg)
	}

	var abbrev, ambiguous *Option
	var abbrevFlags, ambiguousFlags matchFlags
	recordAbbrev := func(opt *Option, flags, optFlags matchFlags) {
		if abbrev != nil {
			ambiguous, ambiguousFlags = abbrev, abbrevFlags
		}
		if flags&matchUnset == 0 && argEnd < len(arg) {
			c.setPending(arg[argEnd+1:])
		}
		abbrev, abbrevFlags = opt, flags^optFlags
	}

	for i := range c.table.opts {
		opt := &c.table.opts[i]
		if opt.Long == "" {
			continue
		}

		if opt.Kind == KindArgument {
			rest, ok := strings.CutPrefix(arg, opt.Long)
			switch {
			case !ok:
				continue
			case strings.HasPrefix(rest, "="):
				return true, c.fail(ErrorTypeUnexpectedValue, opt, 0, "takes no value")
			case rest != "":
				continue
			}
			c.forward(c.args[c.pos])
			return true, nil
		}

		name := opt.Long
		var flags, optFlags matchFlags
	again:
		for {
			rest, exact := strings.CutPrefix(arg, name)
			if !exact {
				// abbreviated?
				if strings.HasPrefix(name, arg[:argEnd]) {
					recordAbbrev(opt, flags, optFlags)
					break again
				}
				if opt.Has(FlagNoNeg) {
					break again
				}
				// negated and abbreviated very much?
				if strings.HasPrefix("no-", arg) {
					flags |= matchUnset
					recordAbbrev(opt, flags, optFlags)
					break again
				}
				// a name that is itself negative is matched by its positive form
				if !strings.HasPrefix(arg, "no-") {
					if strings.HasPrefix(name, "no-") {
						name = name[3:]
						optFlags |= matchUnset
						continue again
					}
					break again
				}
				flags |= matchUnset
				rest, exact = strings.CutPrefix(arg[3:], name)
				if !exact {
					// abbreviated and negated?
					if strings.HasPrefix(name, arg[3:]) {
						recordAbbrev(opt, flags, optFlags)
					}
					break again
				}
			}
			if rest != "" {
				if rest[0] != '=' {
					break again
				}
				c.setPending(rest[1:])
			}
			return true, c.getValue(opt, flags^optFlags)
		}
	}

	if ambiguous != nil {
		return true, &ParseError{
			Type: ErrorTypeAmbiguousOption,
			Message: fmt.Sprintf("ambiguous option: %s (could be --%s%s or --%s%s)",
				arg,
				negPrefix(ambiguousFlags), ambiguous.Long,
				negPrefix(abbrevFlags), abbrev.Long),
			Option: "--" + arg[:argEnd],
			Token:  "--" + arg,
		}
	}
	if abbrev != nil {
		return true, c.getValue(abbrev, abbrevFlags)
	}
	return false, nil
}

func negPrefix(flags matchFlags) string {
	if flags&matchUnset != 0 {
		return "no-"
	}
	return ""
}

// parseNoDash matches a lone character against dashless descriptors.
func (c *Context) parseNoDash(arg string) (bool, error) {
	if len(arg) != 1 {
		return false, nil
	}
	for i := range c.table.opts {
		opt := &c.table.opts[i]
		if opt.Has(FlagNoDash) && opt.Short == rune(arg[0]) {
			return true, c.getValue(opt, matchShort)
		}
	}
	return false, nil
}

// checkTypos catches a long option written with a single dash, such as
// -verbose or -no-edit.
func (c *Context) checkTypos(arg string) error {
	if len(arg) < 3 {
		return nil
	}
	typo := strings.HasPrefix(arg, "no-")
	for i := 0; !typo && i < len(c.table.opts); i++ {
		long := c.table.opts[i].Long
		typo = long != "" && strings.HasPrefix(long, arg)
	}
	if !typo {
		return nil
	}
	return &ParseError{
		Type:       ErrorTypeTypo,
		Message:    fmt.Sprintf("did you mean `--%s` (with two dashes)?", arg),
		Option:     "-" + arg,
		Token:      "-" + arg,
		Suggestion: "--" + arg,
	}
}

// unknownError describes the unmatched token tok.
func (c *Context) unknownError(tok string) *ParseError {
	err := &ParseError{Type: ErrorTypeUnknownOption, Token: tok}
	switch {
	case strings.HasPrefix(tok, "--"):
		err.Option = tok
		err.Message = fmt.Sprintf("unknown option `%s'", tok[2:])
	case c.off < len(c.cluster) && c.cluster[c.off] < 0x80:
		err.Option = "-" + string(c.cluster[c.off])
		err.Message = fmt.Sprintf("unknown switch `%c'", c.cluster[c.off])
	default:
		err.Option = tok
		err.Message = fmt.Sprintf("unknown non-ascii option in string: `%s'", tok)
	}
	return err
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
