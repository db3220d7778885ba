// Package display formats user-facing terminal output for the rfind CLI.
//
// # Warning Messages
//
// Invalid sources are reported as yellow warning blocks with a caret under
// the offending position:
//
//	warning := display.WarnInvalidSource("src/{a,b", err)
//	warning.Display(os.Stderr)
//
// Warnings can also be built by hand:
//
//	warning := display.Warning{
//	    Title:      "Configuration Issue",
//	    Message:    "ignore_folders entry contains a separator",
//	    Suggestion: "Use a bare directory name",
//	}
//	warning.Display(os.Stderr)
//
// # Pattern Help
//
// PatternHelp writes the pattern syntax reference shown by --patterns.
//
// Color is applied only when the writer is a terminal; all functions accept
// io.Writer for testability.
package display
