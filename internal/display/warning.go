package display

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/rfind/internal/glob"
	"github.com/mattn/go-isatty"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string // Main warning title
	Message    string // Detailed explanation (optional)
	Pattern    string // Pattern to echo with a caret (optional)
	Offset     int    // Caret position in Pattern, negative for none
	Suggestion string // Action to take (optional)
}

// WarnInvalidSource creates a warning for a source that failed to compile.
func WarnInvalidSource(source string, err error) Warning {
	w := Warning{
		Title:   fmt.Sprintf("Invalid source %q", source),
		Message: err.Error(),
		Offset:  -1,
	}

	var globErr *glob.Error
	if errors.As(err, &globErr) {
		w.Message = globErr.Kind.Error()
		if globErr.Err != nil {
			w.Message += ": " + globErr.Err.Error()
		}
		w.Pattern = globErr.Pattern
		w.Offset = globErr.Offset
		w.Suggestion = suggestionFor(globErr.Kind)
	}
	return w
}

func suggestionFor(kind error) string {
	switch {
	case errors.Is(kind, glob.ErrTrailingSeparator):
		return "Remove the trailing separator, or end with ** to match directories"
	case errors.Is(kind, glob.ErrUnclosedBrace), errors.Is(kind, glob.ErrExtraClosingBrace):
		return "Balance { and } within a single path component"
	case errors.Is(kind, glob.ErrSeparatorInBraces):
		return "Alternatives cannot span directories; use one {...} per component"
	case errors.Is(kind, glob.ErrRecurseNotAlone):
		return "Use ** as a whole component, e.g. src/**/*.go"
	case errors.Is(kind, glob.ErrUnclosedBracket):
		return "Close the character class with ]"
	default:
		return ""
	}
}

// Display shows the warning in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.render(isTerminal(out)))
}

// isTerminal reports whether out is a terminal honouring NO_COLOR
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (w Warning) render(colored bool) string {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if w.Pattern != "" && w.Offset >= 0 {
		b.WriteString("      ")
		b.WriteString(w.Pattern)
		b.WriteString("\n")
		b.WriteString("      ")
		b.WriteString(strings.Repeat(" ", caretColumn(w.Pattern, w.Offset)))
		b.WriteString("^\n")
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colored {
		return b.String()
	}
	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	return yellow.Sprint(b.String())
}

// caretColumn converts a rune offset into a display column, clamped to the pattern end
func caretColumn(pattern string, offset int) int {
	n := len([]rune(pattern))
	if offset > n {
		return n
	}
	return offset
}
