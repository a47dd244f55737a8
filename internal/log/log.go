package log

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString maps a config/flag value to a Level. Unknown names fall
// back to INFO.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO", "WARN":
		return LevelInfo
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger writes "LEVEL: component: message" lines. Loggers made with Named
// share one destination and one level.
type Logger struct {
	logger    *log.Logger
	level     *Level
	component string
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.Ltime),
		level:  &level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// Named returns a logger tagging its lines with component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{logger: l.logger, level: l.level, component: component}
}

func (l *Logger) printf(at Level, tag, format string, v []interface{}) {
	if *l.level > at {
		return
	}
	if l.component != "" {
		tag += ": " + l.component
	}
	l.logger.Printf(tag+": "+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.printf(LevelDebug, "DEBUG", format, v)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.printf(LevelInfo, "INFO", format, v)
}

// Warnf shares the INFO threshold.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.printf(LevelInfo, "WARN", format, v)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.printf(LevelError, "ERROR", format, v)
}

// SetLevel changes the level of l and every logger sharing its destination.
func (l *Logger) SetLevel(level Level) {
	*l.level = level
}

func (l *Logger) Level() Level {
	return *l.level
}
