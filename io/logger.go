package optio

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

// String returns the tag printed in front of a message at this level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LogFormat defines the output format for log messages
type LogFormat int

const (
	LogFormatTagged LogFormat = iota // "error: message"
	LogFormatPlain                   // "message"
)

// Logger writes one-line diagnostics. Warnings and worse go to stderr.
type Logger struct {
	io       *IOManager
	format   LogFormat
	minLevel LogLevel
	theme    Theme
}

// NewLogger creates a new logger bound to the given IOManager. Debug output
// is suppressed unless PARSEOPT_DEBUG is set or Debug(true) is called.
func NewLogger(m *IOManager) *Logger {
	l := &Logger{
		io:       m,
		format:   LogFormatTagged,
		minLevel: LevelInfo,
		theme:    DefaultTheme(),
	}
	if os.Getenv("PARSEOPT_DEBUG") != "" {
		l.minLevel = LevelDebug
	}
	return l
}

// WithFormat sets the log format and returns the logger for chaining
func (l *Logger) WithFormat(format LogFormat) *Logger {
	l.format = format
	return l
}

// WithTheme sets a custom theme for level colors
func (l *Logger) WithTheme(theme Theme) *Logger {
	l.theme = theme
	return l
}

// Debug toggles debug-level output
func (l *Logger) Debug(enabled bool) *Logger {
	if enabled {
		l.minLevel = LevelDebug
	} else {
		l.minLevel = LevelInfo
	}
	return l
}

// Log outputs a log message at the specified level
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	w := l.writer(level)
	fmt.Fprintln(w, l.formatMessage(w, level, fmt.Sprintf(format, args...)))
}

func (l *Logger) formatMessage(w io.Writer, level LogLevel, msg string) string {
	if l.format == LogFormatPlain || strings.TrimSpace(msg) == "" {
		return msg
	}
	tag := l.io.Colorize(w, level.String()+":", l.color(level).code())
	return tag + " " + msg
}

func (l *Logger) color(level LogLevel) Color {
	switch level {
	case LevelDebug:
		return l.theme.Debug
	case LevelInfo:
		return l.theme.Info
	case LevelWarning:
		return l.theme.Warning
	case LevelError:
		return l.theme.Error
	case LevelFatal:
		return l.theme.Fatal
	default:
		return NoColor
	}
}

func (l *Logger) writer(level LogLevel) io.Writer {
	if level >= LevelWarning || level == LevelDebug {
		return l.io.Err()
	}
	return l.io.Out()
}

// Debugf logs a trace message to stderr when debugging is enabled
func (l *Logger) Debugf(format string, args ...any) { l.Log(LevelDebug, format, args...) }

// Infof logs an informational message to stdout
func (l *Logger) Infof(format string, args ...any) { l.Log(LevelInfo, format, args...) }

// Warningf logs a warning to stderr
func (l *Logger) Warningf(format string, args ...any) { l.Log(LevelWarning, format, args...) }

// Errorf logs an error to stderr
func (l *Logger) Errorf(format string, args ...any) { l.Log(LevelError, format, args...) }

// Fatalf logs a fatal message to stderr. It does not exit; the caller decides.
func (l *Logger) Fatalf(format string, args ...any) { l.Log(LevelFatal, format, args...) }
