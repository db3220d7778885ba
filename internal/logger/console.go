// Package logger provides logging implementations for rfind searches.
//
// The logger package reports search progress, traversal errors and the
// final summary. Implementations are thread-safe and support various
// output destinations (console, file).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/rfind/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs search progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color already folds in TTY detection and NO_COLOR
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
// Format: "[HH:MM:SS] [LEVEL] <message>"
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel returns the level name wrapped in its ANSI color.
func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogSourceStart logs the start of a source exploration at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] Searching <source> from <root>"
func (cl *ConsoleLogger) LogSourceStart(source string, root string) {
	cl.LogDebug(fmt.Sprintf("Searching %s from %s", source, displayRoot(root)))
}

// LogSourceResult logs the outcome of one source at DEBUG level.
func (cl *ConsoleLogger) LogSourceResult(result models.SourceResult) {
	cl.LogDebug(formatSourceResult(result))
}

// LogTraversalError logs a directory that could not be read at WARN level.
func (cl *ConsoleLogger) LogTraversalError(err error) {
	cl.LogWarn(err.Error())
}

// LogInvalidSource logs a source that failed to compile at ERROR level.
func (cl *ConsoleLogger) LogInvalidSource(source string, err error) {
	cl.LogError(fmt.Sprintf("Invalid source %s: %v", source, err))
}

// LogSummary logs the search summary at INFO level.
// Format: "[HH:MM:SS] <n> file(s), <n> dir(s) found in <d>"
func (cl *ConsoleLogger) LogSummary(summary models.SearchSummary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var output string
	if cl.colorOutput {
		output = fmt.Sprintf("[%s] %s\n", ts, formatColorizedSummary(summary, newColorScheme()))
	} else {
		output = fmt.Sprintf("[%s] %s\n", ts, formatSummary(summary))
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func displayRoot(root string) string {
	if root == "" {
		return "."
	}
	return root
}

func formatSourceResult(result models.SourceResult) string {
	return fmt.Sprintf("Source %s: %s (%d file(s), %d dir(s), %d error(s), %s)",
		result.Source, result.Status, result.FilesFound, result.DirsFound, result.Errors,
		formatDuration(result.Duration))
}

// formatSummary renders the plain text summary line.
func formatSummary(summary models.SearchSummary) string {
	msg := fmt.Sprintf("%d file(s), %d dir(s) found in %s", summary.FilesFound, summary.DirsFound,
		formatDuration(summary.Duration))
	if summary.Errors > 0 {
		msg += fmt.Sprintf(", %d error(s)", summary.Errors)
	}
	if summary.InvalidSources > 0 {
		msg += fmt.Sprintf(", %d invalid source(s)", summary.InvalidSources)
	}
	return msg
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "850ms", "1.250s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.3fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                    {}
func (n *NoOpLogger) LogDebug(message string)                    {}
func (n *NoOpLogger) LogInfo(message string)                     {}
func (n *NoOpLogger) LogWarn(message string)                     {}
func (n *NoOpLogger) LogError(message string)                    {}
func (n *NoOpLogger) LogSourceStart(source string, root string)  {}
func (n *NoOpLogger) LogSourceResult(result models.SourceResult) {}
func (n *NoOpLogger) LogTraversalError(err error)                {}
func (n *NoOpLogger) LogInvalidSource(source string, err error)  {}
func (n *NoOpLogger) LogSummary(summary models.SearchSummary)    {}
