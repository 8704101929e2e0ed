// Package middleware provides composable wrappers around option callbacks:
// Recovery, Logger and Validator.
package middleware

import (
	"time"
)

// This package defines middleware using interfaces to avoid import cycles.
// The parseopt package imports this package and *parseopt.Option satisfies
// the Option interface below.

// Option is the descriptor whose callback is being invoked. It is
// implemented by *parseopt.Option.
type Option interface {
	// Name returns the spelling used in diagnostics: "--long" when the
	// descriptor has a long name, "-c" otherwise.
	Name() string
}

// Callback is the option callback signature. unset is true when the negated
// form (--no-name) was given, in which case arg is empty.
type Callback func(opt Option, arg string, unset bool) error

// Middleware defines the middleware function signature
type Middleware func(next Callback) Callback

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply applies the middleware chain to a Callback. Middleware are wrapped
// in the order they appear in the chain.
func (chain MiddlewareChain) Apply(cb Callback) Callback {
	for i := len(chain) - 1; i >= 0; i-- {
		cb = chain[i](cb)
	}
	return cb
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	return append(chain, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// Error types for middleware

// ValidationError represents a rejected option value
type ValidationError struct {
	Option  string
	Value   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Option != "" {
		msg = e.Option + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// RecoveryError represents a panic recovered inside a callback
type RecoveryError struct {
	Panic  any
	Option string
	Stack  []byte
}

func (e *RecoveryError) Error() string {
	return "callback for '" + e.Option + "' panicked: " + toString(e.Panic)
}

// Configuration types

// MiddlewareConfig contains configuration for middleware behavior
type MiddlewareConfig struct {
	LogLevel    LogLevel
	LogOutput   LogOutput
	LogFormat   LogFormat
	IncludeArgs bool
	PrintStack  bool
	StackSize   int
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// LogOutput represents log output destinations
type LogOutput int

const (
	LogOutputStderr LogOutput = iota
	LogOutputStdout
	LogOutputNone
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// CallInfo describes one callback invocation
type CallInfo struct {
	Option    string
	Arg       string
	Unset     bool
	StartTime time.Time
	Duration  time.Duration
	Error     error
}

// Configuration options

type MiddlewareOption func(config *MiddlewareConfig)

func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:    LogLevelInfo,
		LogOutput:   LogOutputStderr,
		LogFormat:   LogFormatText,
		IncludeArgs: true,
		PrintStack:  false,
		StackSize:   4096,
	}
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

// Utility functions

func toString(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "<unknown>"
}

func optionName(opt Option) string {
	if opt == nil {
		return "unknown"
	}
	return opt.Name()
}
