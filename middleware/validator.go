package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidatorFunc checks a single option value. Validators never see the
// negated form; --no-name always passes through untouched.
type ValidatorFunc func(arg string) error

// Validator creates a middleware that runs every validator against the value
// before the callback sees it. The first failure aborts the callback.
func Validator(validators ...ValidatorFunc) Middleware {
	return func(next Callback) Callback {
		return func(opt Option, arg string, unset bool) error {
			if unset {
				return next(opt, arg, unset)
			}
			for _, validate := range validators {
				if validate == nil {
					continue
				}
				if err := validate(arg); err != nil {
					// If it's already a ValidationError, fill in the option and return it
					validationErr := &ValidationError{}
					if errors.As(err, &validationErr) {
						if validationErr.Option == "" {
							validationErr.Option = optionName(opt)
						}
						return validationErr
					}
					return &ValidationError{
						Option:  optionName(opt),
						Value:   arg,
						Message: "invalid value",
						Cause:   err,
					}
				}
			}
			return next(opt, arg, unset)
		}
	}
}

// NotEmpty rejects an empty value
func NotEmpty() ValidatorFunc {
	return func(arg string) error {
		if arg == "" {
			return &ValidationError{Message: "value cannot be empty"}
		}
		return nil
	}
}

// OneOf accepts only the listed values
func OneOf(values ...string) ValidatorFunc {
	return func(arg string) error {
		for _, v := range values {
			if arg == v {
				return nil
			}
		}
		return &ValidationError{
			Value:   arg,
			Message: fmt.Sprintf("'%s' is not one of: %s", arg, strings.Join(values, ", ")),
		}
	}
}

// Regex accepts values matching pattern
func Regex(pattern string) ValidatorFunc {
	// Compile the regex once during function creation
	re, err := regexp.Compile(pattern)
	if err != nil {
		return func(string) error {
			return fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
		}
	}

	return func(arg string) error {
		if !re.MatchString(arg) {
			return &ValidationError{
				Value:   arg,
				Message: fmt.Sprintf("'%s' does not match pattern '%s'", arg, pattern),
			}
		}
		return nil
	}
}

// Range accepts base-10 integers in [lo, hi]
func Range(lo, hi int) ValidatorFunc {
	return func(arg string) error {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return &ValidationError{Value: arg, Message: fmt.Sprintf("'%s' is not an integer", arg)}
		}
		if n < lo || n > hi {
			return &ValidationError{
				Value:   arg,
				Message: fmt.Sprintf("%d is out of range [%d, %d]", n, lo, hi),
			}
		}
		return nil
	}
}
