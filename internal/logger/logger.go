// Package logger provides a small levelled logger. The browser draws on the
// terminal, so log output goes to a file or nowhere.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// Logger is the logging surface used across the application.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ValidLevel reports whether level is a known level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if ValidLevel(normalized) {
		return normalized
	}
	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// WriterLogger writes "[15:04:05] [LEVEL] message" lines to an io.Writer.
// It is safe for concurrent use.
type WriterLogger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	logLevel string
	now      func() time.Time
}

// New returns a logger writing to out at the given level.
func New(out io.Writer, level string) *WriterLogger {
	return &WriterLogger{
		out:      out,
		logLevel: normalizeLogLevel(level),
		now:      time.Now,
	}
}

// NewFileLogger appends to path, creating its directory if needed.
func NewFileLogger(path string, level string) (*WriterLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(file, level)
	l.closer = file
	return l, nil
}

// Close releases the underlying file, if any.
func (l *WriterLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.out = io.Discard
	return err
}

// Level returns the effective level.
func (l *WriterLogger) Level() string {
	return l.logLevel
}

func (l *WriterLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(l.logLevel)
}

func (l *WriterLogger) Tracef(format string, args ...any) { l.logWithLevel("TRACE", format, args) }
func (l *WriterLogger) Debugf(format string, args ...any) { l.logWithLevel("DEBUG", format, args) }
func (l *WriterLogger) Infof(format string, args ...any)  { l.logWithLevel("INFO", format, args) }
func (l *WriterLogger) Warnf(format string, args ...any)  { l.logWithLevel("WARN", format, args) }
func (l *WriterLogger) Errorf(format string, args ...any) { l.logWithLevel("ERROR", format, args) }

func (l *WriterLogger) logWithLevel(level string, format string, args []any) {
	if !l.shouldLog(strings.ToLower(level)) {
		return
	}
	message := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "[%s] [%s] %s\n", l.now().Format("15:04:05"), level, message)
}

type nopLogger struct{}

func (nopLogger) Tracef(string, ...any) {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
