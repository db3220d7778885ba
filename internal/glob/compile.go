package glob

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

const (
	recurseMarker = "**"
	// A stray closing brace also starts the translated part so that it is
	// reported instead of being taken literally.
	wildcards  = "*?[{}"
	separators = `/\`
)

// Options tune how a pattern is compiled and explored.
type Options struct {
	// IgnoreFolders lists directory base names never expanded. nil selects
	// DefaultIgnoreFolders, an empty non-nil slice ignores nothing.
	IgnoreFolders []string
	// IncludeDirs makes exploration report directories satisfying the last
	// segment as MatchDir items.
	IncludeDirs bool
	// AutoRecurse prefixes a pattern holding no separator with **/ so it is
	// searched at every depth below the current directory.
	AutoRecurse bool
}

// DefaultOptions returns the options used by Compile.
func DefaultOptions() Options {
	return Options{IgnoreFolders: slices.Clone(DefaultIgnoreFolders)}
}

// Search is a compiled pattern: a literal root plus the segments applied
// below it. A Search is immutable and may be explored any number of times,
// including concurrently.
type Search struct {
	pattern     string
	root        string
	segments    []Segment
	ignore      IgnorePolicy
	includeDirs bool
	fsys        fileSystem
}

// Compile compiles pattern with DefaultOptions.
func Compile(pattern string) (*Search, error) {
	return CompileWithOptions(pattern, DefaultOptions())
}

// CompileWithOptions splits pattern into its literal root and segments.
// Malformed patterns return a *Error; nothing is read from disk.
func CompileWithOptions(pattern string, opts Options) (*Search, error) {
	if opts.AutoRecurse && pattern != "" && !strings.ContainsAny(pattern, separators) {
		pattern = recurseMarker + "/" + pattern
	}

	root, segments, err := parse(pattern)
	if err != nil {
		return nil, err
	}

	ignore := opts.IgnoreFolders
	if ignore == nil {
		ignore = DefaultIgnoreFolders
	}

	return &Search{
		pattern:     pattern,
		root:        root,
		segments:    segments,
		ignore:      NewIgnorePolicy(ignore),
		includeDirs: opts.IncludeDirs,
		fsys:        osFS{},
	}, nil
}

// MustCompile is like Compile but panics on error. For tests and package
// level patterns known to be valid.
func MustCompile(pattern string) *Search {
	s, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

// Pattern returns the pattern that was compiled.
func (s *Search) Pattern() string { return s.pattern }

// Root returns the literal directory the search starts from. An empty root
// means the current directory.
func (s *Search) Root() string { return s.root }

// Segments returns a copy of the compiled segments. It is empty when the
// whole pattern was literal.
func (s *Search) Segments() []Segment { return slices.Clone(s.segments) }

// IncludeDirs reports whether directory matches are produced.
func (s *Search) IncludeDirs() bool { return s.includeDirs }

func (s *Search) String() string {
	parts := make([]string, len(s.segments))
	for i, seg := range s.segments {
		parts[i] = seg.String()
	}
	return "root=" + s.root + " segments=[" + strings.Join(parts, ", ") + "]"
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// parse splits pattern at the last separator before the first component
// holding a wildcard and translates what follows into segments.
func parse(pattern string) (string, []Segment, error) {
	if pattern == "" {
		return "", nil, newError(ErrEmptyPattern, pattern, 0)
	}
	runes := []rune(pattern)
	if isSeparator(runes[len(runes)-1]) {
		return "", nil, newError(ErrTrailingSeparator, pattern, len(runes)-1)
	}

	cut, wild := -1, -1
	for i, r := range runes {
		if isSeparator(r) {
			cut = i
			continue
		}
		if strings.ContainsRune(wildcards, r) {
			wild = i
			break
		}
	}
	if wild < 0 {
		return rootPath(pattern), nil, nil
	}

	root := ""
	if cut >= 0 {
		root = rootPath(string(runes[:cut]))
	}

	segments, err := translate(pattern, runes[cut+1:], cut+1)
	if err != nil {
		return "", nil, err
	}
	return root, segments, nil
}

// rootPath converts a literal prefix to a native path. An empty prefix only
// happens for patterns starting with a separator and names the filesystem root.
func rootPath(prefix string) string {
	if prefix == "" {
		return string(filepath.Separator)
	}
	p := filepath.FromSlash(strings.ReplaceAll(prefix, `\`, "/"))
	if vol := filepath.VolumeName(p); vol != "" && vol == p {
		p += string(filepath.Separator)
	}
	return p
}

// translate converts the wildcard part of a pattern into segments. base is
// the offset of rest inside pattern, used for error reporting.
func translate(pattern string, rest []rune, base int) ([]Segment, error) {
	// A trailing separator closes the last component like any other.
	src := make([]rune, 0, len(rest)+1)
	src = append(src, rest...)
	src = append(src, '/')

	var (
		segments []Segment
		expr     strings.Builder
		raw      strings.Builder
		start    = base
		wild     bool
		depth    int
	)

	for i := 0; i < len(src); i++ {
		r := src[i]
		pos := base + i

		if isSeparator(r) {
			if depth > 0 {
				if i == len(src)-1 {
					return nil, newError(ErrUnclosedBrace, pattern, start)
				}
				return nil, newError(ErrSeparatorInBraces, pattern, pos)
			}
			if raw.Len() > 0 {
				seg, err := finishComponent(pattern, raw.String(), expr.String(), wild, start)
				if err != nil {
					return nil, err
				}
				segments = append(segments, seg)
			}
			expr.Reset()
			raw.Reset()
			wild = false
			start = pos + 1
			continue
		}

		switch r {
		case '*':
			expr.WriteString(".*")
			wild = true
		case '?':
			expr.WriteString(".")
			wild = true
		case '{':
			depth++
			expr.WriteString("(")
			wild = true
		case '}':
			depth--
			if depth < 0 {
				return nil, newError(ErrExtraClosingBrace, pattern, pos)
			}
			expr.WriteString(")")
		case ',':
			if depth > 0 {
				expr.WriteString("|")
			} else {
				expr.WriteString(",")
			}
		case '[':
			end, err := translateClass(src, i, &expr)
			if err != nil {
				return nil, newError(ErrUnclosedBracket, pattern, pos)
			}
			raw.WriteString(string(src[i : end+1]))
			i = end
			wild = true
			continue
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
		raw.WriteRune(r)
	}

	if expr.Len() > 0 || raw.Len() > 0 {
		return nil, newError(ErrInternal, pattern, base+len(rest))
	}
	return segments, nil
}

// translateClass copies the character class opening at src[open] into out
// and returns the index of its matching closing bracket. Nested brackets
// such as [[:digit:]] are copied as they are.
func translateClass(src []rune, open int, out *strings.Builder) (int, error) {
	out.WriteByte('[')
	j := open + 1
	if j < len(src) && src[j] == '!' {
		out.WriteByte('^')
		j++
	}
	// A bracket right after the opening one is part of the set.
	if j < len(src) && src[j] == ']' {
		out.WriteString(`\]`)
		j++
	}

	depth := 1
	for ; j < len(src); j++ {
		c := src[j]
		switch {
		case c == ']':
			out.WriteByte(']')
			depth--
			if depth == 0 {
				return j, nil
			}
		case c == '[':
			out.WriteByte('[')
			depth++
		case c == '\\' && j+2 < len(src):
			out.WriteRune(c)
			out.WriteRune(src[j+1])
			j++
		case isSeparator(c):
			return 0, ErrUnclosedBracket
		default:
			out.WriteRune(c)
		}
	}
	return 0, ErrUnclosedBracket
}

func finishComponent(pattern, raw, expr string, wild bool, offset int) (Segment, error) {
	switch {
	case raw == recurseMarker:
		return recurseSegment(), nil
	case strings.Contains(raw, recurseMarker):
		return Segment{}, newError(ErrRecurseNotAlone, pattern, offset)
	case wild:
		re, err := regexp.Compile("(?i)^(?:" + expr + ")$")
		if err != nil {
			e := newError(ErrInvalidFilter, pattern, offset)
			e.Err = err
			return Segment{}, e
		}
		return filterSegment(raw, re), nil
	default:
		return constantSegment(raw), nil
	}
}
