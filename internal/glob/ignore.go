package glob

import "strings"

// DefaultIgnoreFolders lists the folder names never expanded during a
// search unless the caller supplies its own list.
var DefaultIgnoreFolders = []string{
	"$recycle.bin",
	"system volume information",
	".git",
}

// IgnorePolicy is a case-insensitive set of directory base names excluded
// from expansion. The zero value ignores nothing.
type IgnorePolicy struct {
	names map[string]struct{}
}

// NewIgnorePolicy builds a policy from folder base names. Blank names are
// skipped.
func NewIgnorePolicy(names []string) IgnorePolicy {
	p := IgnorePolicy{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		p.names[name] = struct{}{}
	}
	return p
}

// Ignores reports whether a directory with the given base name must not be
// expanded.
func (p IgnorePolicy) Ignores(name string) bool {
	if len(p.names) == 0 {
		return false
	}
	_, ok := p.names[strings.ToLower(name)]
	return ok
}

// Len returns the number of names in the policy.
func (p IgnorePolicy) Len() int {
	return len(p.names)
}
