package middleware

import (
	"fmt"
	"os"
	"runtime"
)

// Recovery creates a middleware that turns a panicking callback into a
// *RecoveryError, so a bad callback fails the parse instead of the process.
func Recovery(options ...MiddlewareOption) Middleware {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}

	return func(next Callback) Callback {
		return func(opt Option, arg string, unset bool) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if config.PrintStack {
						stack = make([]byte, config.StackSize)
						length := runtime.Stack(stack, false)
						stack = stack[:length]
					}

					recoveryErr := &RecoveryError{
						Panic:  r,
						Option: optionName(opt),
						Stack:  stack,
					}

					if config.PrintStack && len(stack) > 0 {
						fmt.Fprintf(os.Stderr, "PANIC in callback for '%s': %v\n", recoveryErr.Option, r)
						fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", stack)
					}

					err = recoveryErr
				}
			}()

			return next(opt, arg, unset)
		}
	}
}

// RecoveryWithHandler creates a recovery middleware with a custom panic handler
func RecoveryWithHandler(
	handler func(panicVal any, option string, stack []byte) error,
	options ...MiddlewareOption,
) Middleware {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}

	return func(next Callback) Callback {
		return func(opt Option, arg string, unset bool) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if config.PrintStack {
						stack = make([]byte, config.StackSize)
						length := runtime.Stack(stack, false)
						stack = stack[:length]
					}
					err = handler(r, optionName(opt), stack)
				}
			}()

			return next(opt, arg, unset)
		}
	}
}

// NoopRecovery lets panics bubble up; handy when debugging a callback.
func NoopRecovery() Middleware {
	return func(next Callback) Callback {
		return next
	}
}
