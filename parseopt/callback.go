package parseopt

import "github.com/dzonerzy/go-parseopt/middleware"

// Wrap decorates cb with middleware, outermost first.
//
//	parseopt.CallbackOpt('c', "color", "when", "colorize output",
//	    parseopt.Wrap(setColor, middleware.Recovery(), middleware.Validator(middleware.OneOf("always", "never", "auto"))))
func Wrap(cb CallbackFunc, mws ...middleware.Middleware) CallbackFunc {
	if len(mws) == 0 {
		return cb
	}
	inner := func(opt middleware.Option, arg string, unset bool) error {
		o, _ := opt.(*Option)
		return cb(o, arg, unset)
	}
	wrapped := middleware.Chain(mws...).Apply(inner)
	return func(opt *Option, arg string, unset bool) error {
		return wrapped(opt, arg, unset)
	}
}

// StringList appends every value to *v; the negated form empties it.
func StringList(short rune, long string, v *[]string, argh, help string) Option {
	return CallbackOpt(short, long, argh, help, func(_ *Option, arg string, unset bool) error {
		if unset {
			*v = nil
			return nil
		}
		*v = append(*v, arg)
		return nil
	})
}
