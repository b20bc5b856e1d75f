// Package logging provides the levelled logger that every Venus component
// receives at construction time.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelTrace:    "TRACE",
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarn:     "WARN",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return name
}

// ParseLevel accepts the names printed by Level.String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(name, s) {
			return level, nil
		}
	}
	return LevelInfo, errors.Newf("unknown log level %q", s)
}

// Logger is the capability components log through. Implementations must be
// safe to call from the render thread and from probe goroutines.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
}

type stdLogger struct {
	out   *log.Logger
	level Level
}

// New writes every message at or above level to w. Each line carries the
// session id so interleaved runs in one file can be told apart.
func New(w io.Writer, level Level, session uuid.UUID) Logger {
	prefix := fmt.Sprintf("[venus %s] ", session.String()[:8])
	return &stdLogger{
		out:   log.New(w, prefix, log.Ldate|log.Ltime|log.Lmicroseconds),
		level: level,
	}
}

func (l *stdLogger) logf(level Level, format string, args []any) {
	if level < l.level {
		return
	}
	l.out.Printf("%-8s %s", level, fmt.Sprintf(format, args...))
}

func (l *stdLogger) Tracef(format string, args ...any)    { l.logf(LevelTrace, format, args) }
func (l *stdLogger) Debugf(format string, args ...any)    { l.logf(LevelDebug, format, args) }
func (l *stdLogger) Infof(format string, args ...any)     { l.logf(LevelInfo, format, args) }
func (l *stdLogger) Warnf(format string, args ...any)     { l.logf(LevelWarn, format, args) }
func (l *stdLogger) Errorf(format string, args ...any)    { l.logf(LevelError, format, args) }
func (l *stdLogger) Criticalf(format string, args ...any) { l.logf(LevelCritical, format, args) }

type discard struct{}

// Discard drops everything.
var Discard Logger = discard{}

func (discard) Tracef(string, ...any)    {}
func (discard) Debugf(string, ...any)    {}
func (discard) Infof(string, ...any)     {}
func (discard) Warnf(string, ...any)     {}
func (discard) Errorf(string, ...any)    {}
func (discard) Criticalf(string, ...any) {}
