// Package logging provides the process-wide structured logger for thresh.
//
// The package wraps [log/slog]. Warnings (clobbered or removed columns,
// discarded input files) and evaluator diagnostics are emitted as slog
// records on the diagnostic stream, never on the data stream, so that
// thresh output can be piped safely.
//
// Call Init once at program startup:
//
//	logging.Init(logging.LevelWarn, os.Stderr)
//
// If GetLogger is called before Init, a WARN-level stderr logger is created
// lazily so that library packages are usable on their own.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
)

// ParseLevel maps a case-insensitive level name to a LogLevel.
// Unknown names fall back to LevelWarn.
func ParseLevel(s string) LogLevel {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelInfo:
		return LevelInfo
	case LevelError:
		return LevelError
	default:
		return LevelWarn
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a text logger writing to w at the given level. Timestamps are
// dropped: the records are user-facing diagnostics, not service logs.
func New(level LogLevel, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level.slogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init (re)configures the global logger.
func Init(level LogLevel, w io.Writer) *slog.Logger {
	l := New(level, w)

	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()

	slog.SetDefault(l)
	return l
}

// GetLogger returns the global logger, creating a WARN-level stderr logger
// on first use.
func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = New(LevelWarn, os.Stderr)
	}
	return logger
}

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("reader")
//	log.Debug("loaded table", "name", name)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
