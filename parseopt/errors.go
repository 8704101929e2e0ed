package parseopt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dzonerzy/go-parseopt/internal/fuzzy"
)

// ErrorType represents error categories for parse failures.
// These categories drive suggestion logic and exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeTableBug           ErrorType = "table_bug"
	ErrorTypeMissingValue       ErrorType = "missing_value"
	ErrorTypeUnexpectedValue    ErrorType = "unexpected_value"
	ErrorTypeTypeMismatch       ErrorType = "type_mismatch"
	ErrorTypeNegationDisallowed ErrorType = "negation_disallowed"
	ErrorTypeModeConflict       ErrorType = "mode_conflict"
	ErrorTypeAmbiguousOption    ErrorType = "ambiguous_option"
	ErrorTypeUnknownOption      ErrorType = "unknown_option"
	ErrorTypeCallbackFailure    ErrorType = "callback_failure"
	ErrorTypeTypo               ErrorType = "did_you_mean"
)

var (
	// ErrHelp is returned by Parser.Parse after usage was printed on request.
	ErrHelp = errors.New("parseopt: help requested")
	// ErrCompletion is returned by Parser.Parse after a completion listing.
	ErrCompletion = errors.New("parseopt: completion listed")
	// ErrNoArgs is wrapped in the ExitError returned by HelpOnEmpty parsers.
	ErrNoArgs = errors.New("parseopt: no arguments given")
)

// ParseError is a single parse failure
type ParseError struct {
	Type    ErrorType
	Message string
	// Option is the spelling that matched, e.g. "--no-color" or "-c".
	Option string
	// Token is the offending token or value text, when there is one.
	Token      string
	Suggestion string
	Err        error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a new ParseError with the given type and message
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{
		Type:    errType,
		Message: message,
	}
}

// CLIError is a reportable error with suggestions.
type CLIError struct {
	Type           ErrorType
	Message        string
	Suggestions    []string
	Cause          error
	Context        map[string]any
	formattedError string // Full formatted error message including suggestions
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.formattedError != "" {
		return e.formattedError
	}
	return e.Message
}

func (e *CLIError) Unwrap() error { return e.Cause }

// Error builders for fluent API

// NewError creates a new CLIError with the given type and message
func NewError(typ ErrorType, message string) *CLIError {
	return &CLIError{
		Type:        typ,
		Message:     message,
		Suggestions: make([]string, 0),
		Context:     make(map[string]any),
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithCause adds an underlying cause to the error
func (e *CLIError) WithCause(cause error) *CLIError {
	e.Cause = cause
	return e
}

// WithContext adds context information to the error
func (e *CLIError) WithContext(key string, value any) *CLIError {
	e.Context[key] = value
	return e
}

// ErrorHandler turns parse errors into CLIErrors, optionally adding fuzzy
// "did you mean" suggestions for unknown options.
type ErrorHandler struct {
	suggestOptions  bool
	maxDistance     int
	maxSuggestions  int
	customHandlers  map[ErrorType]func(*CLIError) *CLIError
	showHelpOnError bool
}

// NewErrorHandler creates a new error handler with defaults
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		suggestOptions:  false, // Disabled by default - user must opt-in
		maxDistance:     2,
		maxSuggestions:  1,
		customHandlers:  make(map[ErrorType]func(*CLIError) *CLIError),
		showHelpOnError: true,
	}
}

// SuggestOptions enables/disables option suggestions
func (eh *ErrorHandler) SuggestOptions(enabled bool) *ErrorHandler {
	eh.suggestOptions = enabled
	return eh
}

// MaxDistance sets the maximum edit distance for suggestions
func (eh *ErrorHandler) MaxDistance(distance int) *ErrorHandler {
	eh.maxDistance = distance
	return eh
}

// MaxSuggestions caps how many alternatives are offered
func (eh *ErrorHandler) MaxSuggestions(n int) *ErrorHandler {
	eh.maxSuggestions = n
	return eh
}

// ShowHelpOnError controls whether usage is printed after a parse error.
// Unknown options always print usage.
func (eh *ErrorHandler) ShowHelpOnError(enabled bool) *ErrorHandler {
	eh.showHelpOnError = enabled
	return eh
}

// Handle registers a custom handler for a specific error type
func (eh *ErrorHandler) Handle(typ ErrorType, handler func(*CLIError) *CLIError) *ErrorHandler {
	eh.customHandlers[typ] = handler
	return eh
}

// FromParseError wraps a ParseError into a CLIError carrying its option and
// token as context.
func (eh *ErrorHandler) FromParseError(pe *ParseError) *CLIError {
	err := NewError(pe.Type, pe.Message).WithCause(pe)
	if pe.Option != "" {
		_ = err.WithContext("option", pe.Option)
	}
	if pe.Token != "" {
		_ = err.WithContext("token", pe.Token)
	}
	// a typo message already names the suggestion
	if pe.Suggestion != "" && pe.Type != ErrorTypeTypo {
		_ = err.WithSuggestion(fmt.Sprintf("Did you mean '%s'?", pe.Suggestion))
	}
	return err
}

// ProcessError handles a CLIError and potentially modifies it with suggestions
func (eh *ErrorHandler) ProcessError(err *CLIError, t *Table) *CLIError {
	if handler, exists := eh.customHandlers[err.Type]; exists {
		err = handler(err)
	}

	switch err.Type { // exhaustive over ErrorType
	case ErrorTypeUnknownOption:
		if eh.suggestOptions && t != nil {
			eh.addOptionSuggestions(err, t)
		}
	case ErrorTypeTableBug, ErrorTypeMissingValue, ErrorTypeUnexpectedValue, ErrorTypeTypeMismatch,
		ErrorTypeNegationDisallowed, ErrorTypeModeConflict, ErrorTypeAmbiguousOption,
		ErrorTypeCallbackFailure, ErrorTypeTypo:
		// No suggestions for these by default.
	}

	return eh.formatError(err)
}

// addOptionSuggestions adds fuzzy-matched long option suggestions using internal/fuzzy.
func (eh *ErrorHandler) addOptionSuggestions(err *CLIError, t *Table) {
	name, ok := err.Context["option"].(string)
	if !ok || !strings.HasPrefix(name, "--") {
		return
	}
	name, _, _ = strings.Cut(name[2:], "=")
	for _, s := range fuzzy.FindSuggestions(name, t.LongNames(), eh.maxDistance, eh.maxSuggestions) {
		_ = err.WithSuggestion(fmt.Sprintf("Did you mean '--%s'?", s))
	}
}

// formatError builds the error message with suggestions.
// The formatted message is stored in the CLIError and returned by Error().
func (eh *ErrorHandler) formatError(err *CLIError) *CLIError {
	if len(err.Suggestions) == 0 {
		err.formattedError = ""
		return err
	}

	var builder strings.Builder
	builder.WriteString(err.Message)
	for _, suggestion := range err.Suggestions {
		builder.WriteString("\n  ")
		builder.WriteString(suggestion)
	}
	err.formattedError = builder.String()
	return err
}
