package display

import (
	"fmt"
	"io"
)

const patternHelp = `Pattern syntax (always case-insensitive):

  *         any run of characters within one path component
  ?         exactly one character
  [abc]     one character from the set; ranges like [a-z] allowed
  [!abc]    one character not in the set
            classes accept regex syntax such as [[:digit:]] or [\d]
  {a,b}     either alternative; alternatives may nest: {a,b{c,d}}
  **        any number of directories, including none (must stand alone)

  / and \ both separate components. Everything before the last separator
  that precedes the first wildcard is the literal search root.

Examples:
  *.go                 Go files in the current directory
  src/**/*_test.go     test files anywhere below src
  C:\logs\{app,db}*    entries in C:\logs starting with app or db
  docs/**              every directory below docs (with -d)
`

// PatternHelp writes the pattern syntax reference
func PatternHelp(w io.Writer) {
	fmt.Fprint(w, patternHelp)
}
