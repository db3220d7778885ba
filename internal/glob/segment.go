package glob

import (
	"fmt"
	"regexp"
)

// SegmentKind identifies the variant held by a Segment.
type SegmentKind uint8

const (
	// SegmentConstant matches one path component exactly.
	SegmentConstant SegmentKind = iota + 1
	// SegmentRecurse is the ** marker, zero or more directory levels.
	SegmentRecurse
	// SegmentFilter matches a path component against a compiled predicate.
	SegmentFilter
)

// String returns the lowercase name of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentConstant:
		return "constant"
	case SegmentRecurse:
		return "recurse"
	case SegmentFilter:
		return "filter"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one compiled, non-root path component of a pattern.
// Name is set for constant segments, Filter for filter segments.
// Segments are never modified once compiled.
type Segment struct {
	Kind   SegmentKind
	Name   string
	Filter *regexp.Regexp
}

func constantSegment(name string) Segment {
	return Segment{Kind: SegmentConstant, Name: name}
}

func recurseSegment() Segment {
	return Segment{Kind: SegmentRecurse, Name: recurseMarker}
}

func filterSegment(name string, re *regexp.Regexp) Segment {
	return Segment{Kind: SegmentFilter, Name: name, Filter: re}
}

// Matches reports whether a single path component satisfies the segment.
// Constant segments compare exactly; the filesystem decides case folding
// when the engine resolves them, so this is only used for display and tests.
func (s Segment) Matches(component string) bool {
	switch s.Kind {
	case SegmentConstant:
		return s.Name == component
	case SegmentRecurse:
		return true
	case SegmentFilter:
		return s.Filter.MatchString(component)
	default:
		return false
	}
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentFilter:
		return fmt.Sprintf("filter(%s => %s)", s.Name, s.Filter.String())
	case SegmentRecurse:
		return "recurse"
	default:
		return fmt.Sprintf("constant(%s)", s.Name)
	}
}
