package middleware

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dzonerzy/go-parseopt/internal/pool"
)

// callInfoPool is a global pool for CallInfo objects to reduce allocations
var callInfoPool = pool.NewPoolWithReset(
	func() *CallInfo {
		return &CallInfo{}
	},
	func(info *CallInfo) {
		*info = CallInfo{}
	},
)

// Logger creates a middleware that logs every callback invocation to the
// configured output.
func Logger(options ...MiddlewareOption) Middleware {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return LoggerWithWriter(getLogWriter(config.LogOutput), options...)
}

// LoggerWithWriter creates a logger middleware that writes to a specific writer
func LoggerWithWriter(writer io.Writer, options ...MiddlewareOption) Middleware {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}

	return func(next Callback) Callback {
		return func(opt Option, arg string, unset bool) error {
			if config.LogLevel == LogLevelNone || writer == nil {
				return next(opt, arg, unset)
			}

			info := callInfoPool.Get()
			defer callInfoPool.Put(info)

			info.Option = optionName(opt)
			info.Arg = arg
			info.Unset = unset
			info.StartTime = time.Now()

			if config.LogLevel >= LogLevelDebug {
				logCall(writer, config, info, "START")
			}

			err := next(opt, arg, unset)

			info.Duration = time.Since(info.StartTime)
			info.Error = err

			logCall(writer, config, info, getLogLevel(err))

			return err
		}
	}
}

// getLogLevel determines log level based on error status
func getLogLevel(err error) string {
	if err != nil {
		return "ERROR"
	}
	return "SUCCESS"
}

// logCall writes the log entry based on configuration
func logCall(writer io.Writer, config *MiddlewareConfig, info *CallInfo, level string) {
	if !shouldLog(config.LogLevel, level) {
		return
	}

	switch config.LogFormat { // exhaustive over LogFormat
	case LogFormatJSON:
		writeJSONLog(writer, info, level, config)
	case LogFormatText:
		writeTextLog(writer, info, level, config)
	default:
		writeTextLog(writer, info, level, config)
	}
}

// shouldLog determines if the log level warrants logging
func shouldLog(configLevel LogLevel, messageLevel string) bool {
	switch messageLevel {
	case "ERROR":
		return configLevel >= LogLevelError
	case "SUCCESS":
		return configLevel >= LogLevelInfo
	case "START":
		return configLevel >= LogLevelDebug
	default:
		return configLevel >= LogLevelInfo
	}
}

// getLogWriter returns the appropriate writer based on configuration
func getLogWriter(output LogOutput) io.Writer {
	switch output {
	case LogOutputStdout:
		return os.Stdout
	case LogOutputStderr:
		return os.Stderr
	case LogOutputNone:
		return nil
	default:
		return os.Stderr
	}
}

// writeTextLog writes a human-readable text log entry
func writeTextLog(writer io.Writer, info *CallInfo, level string, config *MiddlewareConfig) {
	b := pool.GetBuilder()
	defer pool.PutBuilder(b)

	b.WriteByte('[')
	b.WriteString(info.StartTime.Format("2006-01-02 15:04:05"))
	b.WriteString("] ")
	b.WriteString(level)
	b.WriteString(" option=")
	b.WriteString(info.Option)
	if info.Unset {
		b.WriteString(" unset=true")
	}

	if info.Duration > 0 {
		b.WriteString(" duration=")
		b.WriteString(info.Duration.String())
	}

	if config.IncludeArgs && info.Arg != "" {
		b.WriteString(" arg=")
		b.WriteString(strconv.Quote(info.Arg))
	}

	if info.Error != nil {
		b.WriteString(" error=")
		b.WriteString(strconv.Quote(info.Error.Error()))
	}

	b.WriteByte('\n')

	//nolint:errcheck,gosec // Logging is best-effort; ignore write errors.
	io.WriteString(writer, b.String())
}

// writeJSONLog writes a structured JSON log entry
func writeJSONLog(writer io.Writer, info *CallInfo, level string, config *MiddlewareConfig) {
	b := pool.GetBuilder()
	defer pool.PutBuilder(b)

	b.WriteString(`{"timestamp":"`)
	b.WriteString(info.StartTime.Format(time.RFC3339))
	b.WriteString(`","level":"`)
	b.WriteString(level)
	b.WriteString(`","option":`)
	writeJSONString(b, info.Option)
	b.WriteString(`,"unset":`)
	b.WriteString(strconv.FormatBool(info.Unset))

	if info.Duration > 0 {
		b.WriteString(`,"duration_us":`)
		b.WriteString(strconv.FormatInt(info.Duration.Microseconds(), 10))
	}

	if config.IncludeArgs && info.Arg != "" {
		b.WriteString(`,"arg":`)
		writeJSONString(b, info.Arg)
	}

	if info.Error != nil {
		b.WriteString(`,"error":`)
		writeJSONString(b, info.Error.Error())
	}

	b.WriteString("}\n")

	//nolint:errcheck,gosec // Logging is best-effort; ignore write errors.
	io.WriteString(writer, b.String())
}

func writeJSONString(b interface{ Write([]byte) (int, error) }, s string) {
	enc, _ := json.Marshal(s)
	//nolint:errcheck // strings.Builder never fails
	b.Write(enc)
}

// Convenience constructors for common logging scenarios

// DebugLogger creates a logger with debug level (logs everything)
func DebugLogger() Middleware {
	return Logger(WithLogLevel(LogLevelDebug))
}

// ErrorLogger creates a logger with error level (logs only errors)
func ErrorLogger() Middleware {
	return Logger(WithLogLevel(LogLevelError))
}

// JSONLogger creates a logger that outputs JSON format
func JSONLogger() Middleware {
	return Logger(WithLogFormat(LogFormatJSON))
}

// SilentLogger creates a logger that doesn't output anything (useful for testing)
func SilentLogger() Middleware {
	return Logger(func(config *MiddlewareConfig) {
		config.LogOutput = LogOutputNone
	})
}
