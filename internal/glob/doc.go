// Package glob compiles shell-style glob patterns and explores the
// filesystem lazily for the entries they select.
//
// # Pattern syntax
//
//   - ? matches exactly one character.
//   - * matches any sequence of characters, including none, within one component.
//   - ** matches the current directory and any depth of subdirectories. It
//     must form a whole path component: a**, **b and *** are rejected.
//   - [abc], [a-z] match one character of the set; [!abc] negates it. A ]
//     right after [ or [! belongs to the set. \x inside a set is an escape
//     passed to the regexp engine, so \d or \] work.
//   - {png,jpg} matches any of the alternatives. Braces nest, a comma only
//     splits the innermost group, and a separator inside braces is an error.
//   - / and \ both separate components. A pattern cannot end with one.
//
// Matching is always case-insensitive for wildcard components. Literal
// components are resolved by the filesystem and follow its case rules.
//
// # Compilation
//
// Compile splits a pattern in two: the literal root, made of every
// component before the first one holding a wildcard, and a list of
// Segments for the rest. Each Segment is a Constant (literal name), a
// Recurse (**) or a Filter (anchored, case-insensitive regexp):
//
//	s, err := glob.Compile("src/**/*.{go,mod}")
//	// s.Root() == "src"
//	// s.Segments() == [recurse, filter(*.{go,mod})]
//
// Compile errors are *Error values and match one of the Err* kinds with
// errors.Is. Nothing touches the filesystem before compilation succeeds.
//
// # Exploration
//
// A Search is explored with an explicit stack instead of recursion, so
// memory grows with pending work and not with tree depth, and the caller
// pulls one Match at a time:
//
//	for m := range s.All() {
//		switch m.Kind {
//		case glob.MatchFile:
//			fmt.Println(m.Path)
//		case glob.MatchError:
//			log.Print(m.Err)
//		}
//	}
//
// Failures to read a directory are reported once as MatchError items and
// never stop the search. Order is not specified. Directories named in the
// ignore policy ($recycle.bin, system volume information and .git by
// default) are never expanded. Directory matches are only produced when
// Options.IncludeDirs is set.
package glob
