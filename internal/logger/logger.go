// Package logger writes studydesk's diagnostic log. The TUI owns the terminal,
// so everything goes to a file instead of stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	initDone     bool
	logPath      string
	currentLevel LogLevel = LevelInfo
)

// DefaultLogPath is the log file used when Init was never called.
const DefaultLogPath = "/tmp/studydesk-debug.log"

// exportLogGlob matches the per-run logs written by `studydesk export`.
const exportLogGlob = "/tmp/studydesk-export-*.log"

// ExportLogPath returns the log path for a single export run.
func ExportLogPath(runID string) string {
	return fmt.Sprintf("/tmp/studydesk-export-%s.log", runID)
}

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// SetDebug toggles between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init opens path for appending and routes all logging there.
// Calling Init twice is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	install(f, path)
	return nil
}

// install must be called with mu held.
func install(f *os.File, path string) {
	logFile = f
	logPath = path
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
	slogLogger.Info("logger initialized", "path", path)
}

// ensureInit must be called with mu held.
func ensureInit() {
	if initDone {
		return
	}
	f, err := os.OpenFile(DefaultLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file %s: %v\n", DefaultLogPath, err)
		initDone = true
		return
	}
	install(f, DefaultLogPath)
}

func logWithLevel(level slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil || !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a printf-style debug message.
func Debug(format string, args ...any) { logWithLevel(slog.LevelDebug, format, args...) }

// Info writes a printf-style info message.
func Info(format string, args ...any) { logWithLevel(slog.LevelInfo, format, args...) }

// Warn writes a printf-style warning.
func Warn(format string, args ...any) { logWithLevel(slog.LevelWarn, format, args...) }

// Error writes a printf-style error message.
func Error(format string, args ...any) { logWithLevel(slog.LevelError, format, args...) }

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset drops all logger state so tests can re-initialize it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = ""
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// Path returns the file currently being written, or "" before initialization.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// LogFiles lists the log files that exist on disk.
func LogFiles() []string {
	var files []string
	if _, err := os.Stat(DefaultLogPath); err == nil {
		files = append(files, DefaultLogPath)
	}
	exportLogs, _ := filepath.Glob(exportLogGlob)
	return append(files, exportLogs...)
}

// ClearLogs removes the main debug log and any export logs.
func ClearLogs() (int, error) {
	count := 0
	if err := os.Remove(DefaultLogPath); err == nil {
		count++
	} else if !os.IsNotExist(err) {
		return count, err
	}

	exportLogs, err := filepath.Glob(exportLogGlob)
	if err != nil {
		return count, err
	}
	for _, p := range exportLogs {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}

// ComponentLogger returns a logger with the component attribute pre-attached.
//
//	log := logger.ComponentLogger("Chat")
//	log.Info("thread loaded", "applicationID", id, "messages", n)
func ComponentLogger(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithApplication returns a logger scoped to one application id.
func WithApplication(applicationID string) *slog.Logger {
	return with(slog.String("applicationID", applicationID))
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return slog.Default().With(attr)
	}
	return slogLogger.With(attr)
}

// Discard returns a logger that drops everything. View-models fall back to it
// when constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
