package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes debug output to a log file. It never writes to the
// terminal: the editor runs on the alternate screen and stray output
// would corrupt it.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Get returns the default logger instance.
func Get() *Logger {
	once.Do(func() {
		defaultLogger = &Logger{}
		defaultLogger.init()
	})
	return defaultLogger
}

func (l *Logger) init() {
	// TEXT_COPILOT_LOG names the log file directly; TEXT_COPILOT_DEBUG=1
	// picks a timestamped file under ~/.text-copilot/logs.
	if path := os.Getenv("TEXT_COPILOT_LOG"); path != "" {
		l.open(path)
		return
	}

	if os.Getenv("TEXT_COPILOT_DEBUG") != "1" {
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	logsDir := filepath.Join(home, ".text-copilot", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	l.open(filepath.Join(logsDir, fmt.Sprintf("text-copilot-%s.log", timestamp)))
}

func (l *Logger) open(path string) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	l.file = file
	l.enabled = true
	l.logf("INFO", "logging started: %s", path)
}

// Enabled returns whether debug logging is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}

func (l *Logger) logf(level, format string, args ...any) {
	if l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.file, "[%s] %s: %s\n", timestamp, level, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.logf("DEBUG", format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.logf("INFO", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.logf("ERROR", format, args...)
}

// Completion logs a raw model completion, truncated.
func (l *Logger) Completion(backend string, raw string) {
	if !l.enabled {
		return
	}
	l.logf("COMPLETION", "[%s] %q", backend, truncate(raw, 500))
}

// Close closes the log file.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Writer returns an io.Writer for the log file.
func (l *Logger) Writer() io.Writer {
	if l.file != nil {
		return l.file
	}
	return io.Discard
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
