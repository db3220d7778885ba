package action

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Print writes one matched path per line.
// Directories end with a path separator and are colored on a terminal.
type Print struct {
	writer      io.Writer
	colorOutput bool
	dirColor    *color.Color
}

// NewPrint creates a Print action writing to w.
func NewPrint(w io.Writer) *Print {
	return &Print{
		writer:      w,
		colorOutput: isTTY(w),
		dirColor:    color.New(color.FgBlue, color.Bold),
	}
}

// isTTY reports whether w is a terminal file.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Name implements Action.
func (p *Print) Name() string {
	return "print"
}

// Apply implements Action.
func (p *Print) Apply(path string, isDir bool) error {
	line := path
	if isDir {
		line = withTrailingSeparator(path)
		if p.colorOutput {
			line = p.dirColor.Sprint(line)
		}
	}

	if _, err := fmt.Fprintln(p.writer, line); err != nil {
		return fmt.Errorf("print %s: %w", path, err)
	}
	return nil
}

func withTrailingSeparator(path string) string {
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return path
	}
	return path + string(filepath.Separator)
}
