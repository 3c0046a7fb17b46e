// Package log provides the process-wide debug logger. Messages are buffered
// in memory until a log file is configured, then flushed to it.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// LevelEnv overrides the configured log level.
const LevelEnv = "GITDOJO_LOG_LEVEL"

// DebugLogger handles debug logging to file and/or buffering.
// It implements io.Writer so it can back a structured logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	logger            = newLogger(globalDebugLogger)
)

func newLogger(w *DebugLogger) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.DebugLevel,
		Prefix:          "gitdojo",
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05.000000",
		Formatter:       charmlog.LogfmtFormatter,
	})
	if lvl, ok := ParseLevel(os.Getenv(LevelEnv)); ok {
		l.SetLevel(lvl)
	}
	return l
}

// Write implements io.Writer.
// It writes to the file if set, otherwise appends to the buffer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.file != nil {
		n, err = l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

// SetFile sets the debug log file path. Creates the file if it doesn't exist.
// If path is empty, discards all buffered logs and future logs.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false

	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}

	return nil
}

// ParseLevel maps a level name to a logger level. Unknown names return false.
func ParseLevel(s string) (charmlog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return charmlog.DebugLevel, true
	case "info":
		return charmlog.InfoLevel, true
	case "warn", "warning":
		return charmlog.WarnLevel, true
	case "error":
		return charmlog.ErrorLevel, true
	}
	return charmlog.DebugLevel, false
}

// SetLevel sets the minimum level by name. The environment override wins.
func SetLevel(name string) {
	if lvl, ok := ParseLevel(os.Getenv(LevelEnv)); ok {
		logger.SetLevel(lvl)
		return
	}
	if lvl, ok := ParseLevel(name); ok {
		logger.SetLevel(lvl)
	}
}

// Logger exposes the structured logger, e.g. for With.
func Logger() *charmlog.Logger {
	return logger
}

// Debug logs msg with key/value pairs at debug level.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Info logs msg with key/value pairs at info level.
func Info(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// Warn logs msg with key/value pairs at warn level.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Error logs msg with key/value pairs at error level.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	logger.Debug(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}

	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	return err
}
