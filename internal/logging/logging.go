package logging

import (
	"io"
	"log"
	"strings"
)

// Level represents severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel maps a config string to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return LevelInfo
}

// Logger is a leveled logger handed explicitly to the components that emit
// diagnostics. There is no package-level logging state.
type Logger struct {
	level Level
	out   *log.Logger
}

func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime),
	}
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, "D", format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(LevelInfo, "I", format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, "W", format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, "E", format, args...) }

func (l *Logger) logf(lv Level, tag, format string, args ...interface{}) {
	if lv < l.level {
		return
	}
	l.out.Printf(tag+" "+format, args...)
}
