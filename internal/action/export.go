package action

import (
	"fmt"
	"sync"

	"github.com/harrison/rfind/internal/filelock"
)

// Export collects matched paths and writes them to a file on Close.
// The file is replaced atomically under its lock. Directories carry a
// trailing separator. The format follows the target extension: .md gives
// a Markdown list, .html that list rendered to HTML, anything else one
// path per line.
type Export struct {
	target string
	format Format
	mu     sync.Mutex
	lines  []string
	closed bool
}

// NewExport creates an Export action targeting path.
func NewExport(path string) *Export {
	return &Export{target: path, format: FormatForPath(path)}
}

// Name implements Action.
func (e *Export) Name() string {
	return "export"
}

// Format returns the export format chosen for the target.
func (e *Export) Format() Format {
	return e.format
}

// Target returns the export file path.
func (e *Export) Target() string {
	return e.target
}

// Apply implements Action.
func (e *Export) Apply(path string, isDir bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("export to %s already closed", e.target)
	}
	if isDir {
		path = withTrailingSeparator(path)
	}
	e.lines = append(e.lines, path)
	return nil
}

// Len returns the number of collected paths.
func (e *Export) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// Close writes the collected paths. Subsequent calls are no-ops.
func (e *Export) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	data, err := render(e.format, e.lines)
	if err != nil {
		return fmt.Errorf("export matches: %w", err)
	}
	if err := filelock.LockAndWrite(e.target, data); err != nil {
		return fmt.Errorf("export matches: %w", err)
	}
	return nil
}
