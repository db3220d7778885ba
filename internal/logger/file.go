package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/rfind/internal/models"
)

// FileLogger logs search events to files in a log directory.
// It creates a timestamped per-run log file and maintains a latest.log
// symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to .rfind/logs/ in the
// current working directory. Uses default log level "info".
func NewFileLogger() (*FileLogger, error) {
	logDir := filepath.Join(".rfind", "logs")
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDir creates a new FileLogger with a custom log directory.
// Uses default log level "info".
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    uuid.New().String(),
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== rfind Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", logger.runID))
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunID returns the identifier written in the run log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message)
	fl.writeRunLog(formatted)
}

// LogSourceStart logs the start of a source exploration at DEBUG level.
func (fl *FileLogger) LogSourceStart(source string, root string) {
	fl.LogDebug(fmt.Sprintf("Searching %s from %s", source, displayRoot(root)))
}

// LogSourceResult logs the outcome of one source at DEBUG level.
func (fl *FileLogger) LogSourceResult(result models.SourceResult) {
	fl.LogDebug(formatSourceResult(result))
}

// LogTraversalError logs a directory that could not be read at WARN level.
func (fl *FileLogger) LogTraversalError(err error) {
	fl.LogWarn(err.Error())
}

// LogInvalidSource logs a source that failed to compile at ERROR level.
func (fl *FileLogger) LogInvalidSource(source string, err error) {
	fl.LogError(fmt.Sprintf("Invalid source %s: %v", source, err))
}

// LogSummary logs the search summary with a per-source breakdown at INFO level.
func (fl *FileLogger) LogSummary(summary models.SearchSummary) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] === Search Summary ===\n", ts))
	sb.WriteString(fmt.Sprintf("[%s] Sources: %d (%d invalid)\n", ts, summary.Sources, summary.InvalidSources))
	for _, r := range summary.Results {
		sb.WriteString(fmt.Sprintf("[%s]   %s\n", ts, formatSourceResult(r)))
	}
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, formatSummary(summary)))

	fl.writeRunLog(sb.String())
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}
