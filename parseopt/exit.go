package parseopt

import (
	"errors"
	"reflect"

	"github.com/dzonerzy/go-parseopt/middleware"
)

// ExitError is a sentinel used to request a specific exit code, either from
// a callback or from Parser.Fatal.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success      int // default: 0
	GeneralError int // default: 1
	UsageError   int // default: 129
	TableBug     int // default: 128
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, UsageError: 129, TableBug: 128}
}

// ExitCodeManager maps errors and categories to process exit codes.
type ExitCodeManager struct {
	codesByType map[reflect.Type]int
	codesByCLI  map[ErrorType]int
	defaults    ExitCodeDefaults
}

// NewExitCodeManager returns a manager with every parse error category
// mapped to the usage status and table bugs to the programmer-error status.
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByType: make(map[reflect.Type]int),
		codesByCLI:  make(map[ErrorType]int),
		defaults:    defaultExitDefaults(),
	}
	m.prewire()
	return m
}

func (e *ExitCodeManager) prewire() {
	for _, typ := range []ErrorType{
		ErrorTypeMissingValue, ErrorTypeUnexpectedValue, ErrorTypeTypeMismatch,
		ErrorTypeNegationDisallowed, ErrorTypeModeConflict, ErrorTypeAmbiguousOption,
		ErrorTypeUnknownOption, ErrorTypeCallbackFailure, ErrorTypeTypo,
	} {
		e.codesByCLI[typ] = e.defaults.UsageError
	}
	e.codesByCLI[ErrorTypeTableBug] = e.defaults.TableBug

	// Prewire middleware types
	e.codesByType[reflect.TypeOf(&middleware.ValidationError{})] = e.defaults.UsageError
	e.codesByType[reflect.TypeOf(&middleware.RecoveryError{})] = e.defaults.GeneralError
}

// Exit code configuration

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. A matching error type takes precedence over category mappings, so a
// callback error type can pick its own status even though the parser wraps it
// in a callback failure.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByType[reflect.TypeOf(err)] = code
	return e
}

// DefineCLI overrides the exit code used for a specific error category.
func (e *ExitCodeManager) DefineCLI(typ ErrorType, code int) *ExitCodeManager {
	e.codesByCLI[typ] = code
	return e
}

// Default replaces the manager's default codes and re-derives the category
// mappings from them. Earlier DefineCLI calls are discarded.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	e.codesByCLI = make(map[ErrorType]int)
	e.prewire()
	return e
}

// Defaults returns the codes in effect.
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ExitError (requested code)
//  2. nil, ErrHelp and ErrCompletion (success)
//  3. TableError (table bug)
//  4. Concrete error type mapping (DefineError)
//  5. ErrorType mapping (DefineCLI) for a CLIError or ParseError
//  6. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, ErrHelp) || errors.Is(err, ErrCompletion) {
		return e.defaults.Success
	}

	var tableErr *TableError
	if errors.As(err, &tableErr) {
		return e.defaults.TableBug
	}

	for t, code := range e.codesByType {
		if errors.As(err, reflect.New(t).Interface()) {
			return code
		}
	}

	var cli *CLIError
	if errors.As(err, &cli) {
		if code, ok := e.codesByCLI[cli.Type]; ok {
			return code
		}
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		if code, ok := e.codesByCLI[pe.Type]; ok {
			return code
		}
	}

	return e.defaults.GeneralError
}
