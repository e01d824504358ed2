// Package logging is a small leveled wrapper around the standard logger.
package logging

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
)

// Level represents different logging verbosity levels
type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]Level{
	"ERROR": LevelError,
	"WARN":  LevelWarn,
	"INFO":  LevelInfo,
	"DEBUG": LevelDebug,
	"TRACE": LevelTrace,
}

// ParseLevel converts a LOG_LEVEL value such as "debug" into a Level
func ParseLevel(s string) (Level, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Logger provides leveled logging. The level may be changed while in use.
type Logger struct {
	level  atomic.Int32
	prefix string
}

// New creates a logger that prefixes every line with [component]
func New(component string, level Level) *Logger {
	l := &Logger{}
	if component != "" {
		l.prefix = "[" + component + "] "
	}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the verbosity
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the current verbosity
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level Level) bool {
	return l.Level() >= level
}

func (l *Logger) logf(level Level, tag, format string, args ...interface{}) {
	if l.Enabled(level) {
		log.Printf(l.prefix+tag+format, args...)
	}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "ERROR ", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "WARN ", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "DEBUG ", format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LevelTrace, "TRACE ", format, args...)
}

var registry = struct {
	sync.Mutex
	level   Level
	loggers []*Logger
}{level: LevelInfo}

// For returns a component logger that follows SetDefaultLevel
func For(component string) *Logger {
	registry.Lock()
	defer registry.Unlock()
	l := New(component, registry.level)
	registry.loggers = append(registry.loggers, l)
	return l
}

// SetDefaultLevel changes the level of every logger created by For
func SetDefaultLevel(level Level) {
	registry.Lock()
	defer registry.Unlock()
	registry.level = level
	for _, l := range registry.loggers {
		l.SetLevel(level)
	}
}
