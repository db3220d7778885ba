package glob

import (
	"errors"
	"fmt"
)

// Compile error kinds. A *Error returned by Compile matches exactly one of
// these with errors.Is.
var (
	ErrEmptyPattern      = errors.New("empty pattern")
	ErrTrailingSeparator = errors.New("pattern cannot end with a path separator")
	ErrUnclosedBrace     = errors.New("unclosed brace")
	ErrExtraClosingBrace = errors.New("extra closing brace")
	ErrSeparatorInBraces = errors.New("path separator not allowed inside braces")
	ErrUnclosedBracket   = errors.New("unclosed character class")
	ErrRecurseNotAlone   = errors.New("** must occupy an entire path component alone")
	ErrInvalidFilter     = errors.New("invalid filter expression")
	ErrInternal          = errors.New("internal translation error")
)

// Error describes why a pattern could not be compiled.
type Error struct {
	// Kind is one of the Err* sentinel values.
	Kind error
	// Pattern is the pattern as given to Compile.
	Pattern string
	// Offset is the character offset in Pattern where the problem was found.
	Offset int
	// Err is the underlying cause, only set for ErrInvalidFilter.
	Err error
}

func newError(kind error, pattern string, offset int) *Error {
	return &Error{Kind: kind, Pattern: pattern, Offset: offset}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("invalid glob pattern %q at offset %d: %v", e.Pattern, e.Offset, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WalkError is a filesystem failure met while exploring. It is reported
// in-band as a MatchError and never stops the traversal.
type WalkError struct {
	// Op is "read dir" when a directory could not be enumerated at all and
	// "read entry" when enumeration stopped part way.
	Op   string
	Path string
	Err  error
}

const (
	opReadDir   = "read dir"
	opReadEntry = "read entry"
)

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}
