package parseopt

import (
	"errors"
	"io"
	"os"

	optio "github.com/dzonerzy/go-parseopt/io"
)

// Parser is the one-shot entry point: it runs a Context to completion,
// reports errors, prints usage and completion, and maps the outcome to an
// exit code.
type Parser struct {
	name     string
	table    *Table
	usage    []string
	prefix   string
	behavior Behavior

	helpOnEmpty bool

	ioManager    *optio.IOManager
	logger       *optio.Logger
	help         HelpRenderer
	errorHandler *ErrorHandler
	exitCodes    *ExitCodeManager
}

// NewParser creates a parser for t. name is the program name used in the
// default usage line.
func NewParser(name string, t *Table) *Parser {
	m := optio.New()
	return &Parser{
		name:         name,
		table:        t,
		usage:        []string{name + " [<options>]"},
		ioManager:    m,
		logger:       optio.NewLogger(m),
		help:         TextHelp{},
		errorHandler: NewErrorHandler(),
	}
}

// Parser configuration methods

// Usage replaces the usage lines shown above the option list.
func (p *Parser) Usage(lines ...string) *Parser {
	p.usage = lines
	return p
}

// Prefix sets the directory relative filename values are joined to.
func (p *Parser) Prefix(dir string) *Parser {
	p.prefix = dir
	return p
}

// KeepDashDash leaves "--" in the result.
func (p *Parser) KeepDashDash() *Parser {
	p.behavior |= KeepDashDash
	return p
}

// StopAtNonOption stops at the first operand; it and everything after it are
// returned untouched.
func (p *Parser) StopAtNonOption() *Parser {
	p.behavior |= StopAtNonOption
	return p
}

// KeepUnknown forwards unknown options instead of failing.
func (p *Parser) KeepUnknown() *Parser {
	p.behavior |= KeepUnknown
	return p
}

// NoInternalHelp disables -h, --help and --help-all.
func (p *Parser) NoInternalHelp() *Parser {
	p.behavior |= NoInternalHelp
	return p
}

// ShellEval wraps requested help in a here-document so a shell script can
// eval the output.
func (p *Parser) ShellEval() *Parser {
	p.behavior |= ShellEval
	return p
}

// HelpOnEmpty shows usage and fails when no arguments are given.
func (p *Parser) HelpOnEmpty() *Parser {
	p.helpOnEmpty = true
	return p
}

// Help replaces the usage renderer.
func (p *Parser) Help(r HelpRenderer) *Parser {
	p.help = r
	return p
}

// Debug enables tracing of every parse step on stderr.
func (p *Parser) Debug(enabled bool) *Parser {
	p.logger.Debug(enabled)
	return p
}

// IO returns the parser's IOManager for fluent configuration.
func (p *Parser) IO() *optio.IOManager {
	return p.ioManager
}

// ErrorHandler returns the parser's error handler for configuration
func (p *Parser) ErrorHandler() *ErrorHandler {
	return p.errorHandler
}

// ExitCodes returns the exit-code manager for this parser.
func (p *Parser) ExitCodes() *ExitCodeManager {
	if p.exitCodes == nil {
		p.exitCodes = NewExitCodeManager()
	}
	return p.exitCodes
}

// Name returns the program name given to NewParser.
func (p *Parser) Name() string { return p.name }

// Table returns the option table.
func (p *Parser) Table() *Table { return p.table }

// Parse applies args to the table and returns the recognized tokens followed
// by the operands. args is reused for the result.
//
// Help and completion requests return ErrHelp and ErrCompletion after the
// output was written. Any other error has already been reported on stderr.
func (p *Parser) Parse(args []string) ([]string, error) {
	ctx, err := Start(p.table, args, p.prefix, p.behavior)
	if err != nil {
		p.logger.Fatalf("%s", err)
		return nil, err
	}

	if p.helpOnEmpty && len(args) == 0 {
		p.ShowUsage(ReasonNoArgs)
		return nil, &ExitError{Code: p.ExitCodes().Defaults().UsageError, Err: ErrNoArgs}
	}

	for {
		state, err := ctx.Step()
		p.logger.Debugf("parseopt: step -> %s at %d/%d", state, len(args)-ctx.Remaining(), len(args))

		switch state { // exhaustive over State
		case StateDone, StateNonOption:
			return ctx.End(), nil

		case StateHelp:
			if err != nil {
				return nil, p.report(err)
			}
			reason := ReasonRequested
			if ctx.ShowHidden() {
				reason = ReasonHelpAll
			}
			p.ShowUsage(reason)
			return nil, ErrHelp

		case StateComplete:
			if err := Completion(p.ioManager.Out(), p.table); err != nil {
				return nil, err
			}
			return nil, ErrCompletion

		case StateError, StateUnknown:
			return nil, p.report(err)

		case StateScanning:
			// Step never stops while scanning
		}
	}
}

// ParseAndExit is Parse for main: on any outcome but success it terminates
// the process with the mapped exit code.
func (p *Parser) ParseAndExit(args []string) []string {
	rest, err := p.Parse(args)
	if err != nil {
		os.Exit(p.ExitCodes().Resolve(err))
	}
	return rest
}

// Fatal reports msg, prints usage to stderr and returns an error that
// resolves to the usage exit code.
func (p *Parser) Fatal(msg string) error {
	p.logger.Fatalf("%s\n", msg)
	p.ShowUsage(ReasonError)
	return &ExitError{Code: p.ExitCodes().Defaults().UsageError, Err: errors.New(msg)}
}

// ShowUsage renders usage: to stdout when requested, to stderr otherwise.
func (p *Parser) ShowUsage(reason Reason) {
	w := p.ioManager.Err()
	if reason == ReasonRequested || reason == ReasonHelpAll {
		w = p.ioManager.Out()
	}
	if err := p.renderHelp(w, reason); err != nil {
		p.logger.Errorf("cannot write usage: %v", err)
	}
}

func (p *Parser) renderHelp(w io.Writer, reason Reason) error {
	eval := p.behavior&ShellEval != 0 && reason != ReasonError
	if eval {
		if _, err := io.WriteString(w, "cat <<\\EOF\n"); err != nil {
			return err
		}
	}
	if err := p.help.Render(w, p.usage, p.table, reason); err != nil {
		return err
	}
	if eval {
		if _, err := io.WriteString(w, "EOF\n"); err != nil {
			return err
		}
	}
	return nil
}

// report prints a parse error with its suggestions and, unless disabled,
// the usage screen. The returned error wraps the original.
func (p *Parser) report(err error) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		// an ExitError or other callback error: the callback reported it
		return err
	}

	cli := p.errorHandler.ProcessError(p.errorHandler.FromParseError(pe), p.table)
	p.logger.Errorf("%s", cli.Error())

	if pe.Type == ErrorTypeUnknownOption || pe.Type == ErrorTypeAmbiguousOption || p.errorHandler.showHelpOnError {
		p.ShowUsage(ReasonError)
	}
	return cli
}
