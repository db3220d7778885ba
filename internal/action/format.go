package action

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

// Format selects how an export file is rendered.
type Format int

const (
	// FormatText writes one path per line.
	FormatText Format = iota
	// FormatMarkdown writes a Markdown bullet list.
	FormatMarkdown
	// FormatHTML writes the Markdown list rendered to HTML.
	FormatHTML
)

// FormatForPath picks the export format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return "text"
	}
}

// render serializes lines in format f.
func render(f Format, lines []string) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(markdownList(lines)), nil
	case FormatHTML:
		var buf bytes.Buffer
		if err := goldmark.New().Convert([]byte(markdownList(lines)), &buf); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		return buf.Bytes(), nil
	default:
		var sb strings.Builder
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		return []byte(sb.String()), nil
	}
}

func markdownList(lines []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# rfind matches\n\n%d match(es)\n\n", len(lines))
	for _, line := range lines {
		sb.WriteString("- ")
		sb.WriteString(escapeMarkdown(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// escapeMarkdown backslash-escapes ASCII punctuation so paths render literally.
func escapeMarkdown(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
