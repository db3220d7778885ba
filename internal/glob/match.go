package glob

import "fmt"

// MatchKind identifies the variant held by a Match.
type MatchKind uint8

const (
	// MatchFile is a file that satisfied every segment.
	MatchFile MatchKind = iota + 1
	// MatchDir is a directory that satisfied every segment. Only produced
	// when the search was compiled with Options.IncludeDirs.
	MatchDir
	// MatchError is a filesystem failure met during traversal.
	MatchError
)

func (k MatchKind) String() string {
	switch k {
	case MatchFile:
		return "file"
	case MatchDir:
		return "dir"
	case MatchError:
		return "error"
	default:
		return fmt.Sprintf("MatchKind(%d)", uint8(k))
	}
}

// Match is one item of an exploration. Path is set for every kind; for
// MatchError it is the directory that failed and Err holds a *WalkError.
type Match struct {
	Kind MatchKind
	Path string
	Err  error
}

// IsFile reports whether m is a file match.
func (m Match) IsFile() bool { return m.Kind == MatchFile }

// IsDir reports whether m is a directory match.
func (m Match) IsDir() bool { return m.Kind == MatchDir }

// IsError reports whether m carries a traversal error.
func (m Match) IsError() bool { return m.Kind == MatchError }

func (m Match) String() string {
	if m.Kind == MatchError {
		return fmt.Sprintf("error(%v)", m.Err)
	}
	return fmt.Sprintf("%s(%s)", m.Kind, m.Path)
}
