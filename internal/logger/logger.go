// Package logger provides a simple logging interface for netbwmon components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The environment logger writes through a shared logrus logger. While the
// dashboard owns the terminal, output goes either to a rotating log file or
// nowhere, never to stdout/stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DebugEnv enables debug output regardless of the configured level.
const DebugEnv = "NETBWMON_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var (
	mu    sync.RWMutex
	base  = newBase()
	level = logrus.InfoLevel
	file  *lumberjack.Logger
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetOutput(os.Stderr)
	// Gating happens in envLogger so NETBWMON_DEBUG can override the level.
	l.SetLevel(logrus.DebugLevel)
	return l
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	level = lvl
	mu.Unlock()
	return nil
}

// SetOutput redirects log output. Closes any file opened by EnableFileLogging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	base.SetOutput(w)
}

// EnableFileLogging sends log output to a size-rotated file.
func EnableFileLogging(path string, maxSize, maxBackups, maxAge int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,    // megabytes
		MaxBackups: maxBackups, // number of backups
		MaxAge:     maxAge,     // days
		Compress:   true,
	}
	base.SetOutput(file)
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func enabled(lvl logrus.Level) bool {
	if lvl == logrus.DebugLevel && os.Getenv(DebugEnv) != "" {
		return true
	}
	mu.RLock()
	defer mu.RUnlock()
	return level >= lvl
}

// envLogger implements Logger on top of the shared logrus logger.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger tagged with a component prefix (e.g. "sampler").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) log(lvl logrus.Level, format string, args ...interface{}) {
	if !enabled(lvl) {
		return
	}
	var entry *logrus.Entry
	if l.prefix != "" {
		entry = base.WithField("component", l.prefix)
	} else {
		entry = logrus.NewEntry(base)
	}
	entry.Logf(lvl, format, args...)
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, format, args...)
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(lvl, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: lvl, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger.
var defaultLogger = NewEnvLogger("")

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
