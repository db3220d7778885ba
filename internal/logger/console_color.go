package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/rfind/internal/models"
)

// colorScheme defines consistent colors for summary counters.
// Green: matches found
// Red: errors and invalid sources
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for counters.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single counter with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, labelColor, valueColor *color.Color) string {
	return fmt.Sprintf("%s: %s", labelColor.Sprint(label), valueColor.Sprintf("%v", value))
}

// formatColorizedSummary formats the search summary with color coding.
// Format: "files: N, dirs: N, errors: N, invalid: N, time: D"
// Zero error counters are omitted.
func formatColorizedSummary(summary models.SearchSummary, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("files", summary.FilesFound, scheme.success, scheme.value),
		formatColorizedMetric("dirs", summary.DirsFound, scheme.success, scheme.value),
	}

	if summary.Errors > 0 {
		parts = append(parts, formatColorizedMetric("errors", summary.Errors, scheme.fail, scheme.fail))
	}
	if summary.InvalidSources > 0 {
		parts = append(parts, formatColorizedMetric("invalid", summary.InvalidSources, scheme.fail, scheme.fail))
	}

	parts = append(parts, formatColorizedMetric("time", formatDuration(summary.Duration), scheme.label, scheme.value))

	return strings.Join(parts, ", ")
}
