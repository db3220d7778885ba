package glob

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// fileSystem is the part of the OS the engine touches. ReadDir follows
// os.File.ReadDir: on failure part way it returns the entries read so far
// together with the error.
type fileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

type itemKind uint8

const (
	itemFolder itemKind = iota
	itemFile
	itemDir
	itemError
)

// pending is one unit of work on the exploration stack.
type pending struct {
	kind      itemKind
	path      string
	index     int
	recursing bool
	err       error
}

// Explorer walks the filesystem for one Search. Each call to Next resumes
// where the previous one stopped; directories are only read when the stack
// reaches them. An Explorer is not safe for concurrent use, but any number
// of Explorers can run over the same Search.
type Explorer struct {
	search *Search
	stack  []pending
}

// Explore starts a new, independent traversal.
func (s *Search) Explore() *Explorer {
	e := &Explorer{search: s}

	if len(s.segments) == 0 {
		info, err := s.fsys.Stat(dirPath(s.root))
		switch {
		case err != nil:
		case info.Mode().IsRegular():
			e.push(pending{kind: itemFile, path: s.root})
		case info.IsDir() && s.includeDirs:
			e.push(pending{kind: itemDir, path: s.root})
		}
		return e
	}

	e.push(pending{kind: itemFolder, path: s.root})
	return e
}

// All returns the matches of a fresh traversal as an iterator. Breaking out
// of the loop abandons the traversal.
func (s *Search) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		e := s.Explore()
		for {
			m, ok := e.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Next returns the next match. The boolean is false once the traversal is
// exhausted.
func (e *Explorer) Next() (Match, bool) {
	for len(e.stack) > 0 {
		item := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]

		switch item.kind {
		case itemFile:
			return Match{Kind: MatchFile, Path: item.path}, true
		case itemDir:
			return Match{Kind: MatchDir, Path: dirPath(item.path)}, true
		case itemError:
			return Match{Kind: MatchError, Path: dirPath(item.path), Err: item.err}, true
		case itemFolder:
			e.expand(item)
		}
	}
	e.stack = nil
	return Match{}, false
}

// Pending returns the number of work items waiting on the stack.
func (e *Explorer) Pending() int {
	return len(e.stack)
}

func (e *Explorer) push(p pending) {
	e.stack = append(e.stack, p)
}

func (e *Explorer) pushError(op, path string, err error) {
	e.push(pending{
		kind: itemError,
		path: path,
		err:  &WalkError{Op: op, Path: dirPath(path), Err: err},
	})
}

func (e *Explorer) expand(item pending) {
	segments := e.search.segments

	// Only a trailing ** leads past the last segment.
	if item.index == len(segments) {
		e.expandTrailing(item)
		return
	}

	seg := segments[item.index]
	switch seg.Kind {
	case SegmentConstant:
		e.expandConstant(item, seg)
	case SegmentRecurse:
		e.push(pending{kind: itemFolder, path: item.path, index: item.index + 1, recursing: true})
	case SegmentFilter:
		e.expandFilter(item, seg)
	}
}

func (e *Explorer) expandConstant(item pending, seg Segment) {
	last := item.index == len(e.search.segments)-1
	child := filepath.Join(item.path, seg.Name)

	if info, err := e.search.fsys.Stat(child); err == nil {
		switch {
		case last && info.Mode().IsRegular():
			e.push(pending{kind: itemFile, path: child})
		case last && info.IsDir() && e.search.includeDirs:
			e.push(pending{kind: itemDir, path: child})
		case !last && info.IsDir():
			e.push(pending{kind: itemFolder, path: child, index: item.index + 1})
		}
	}

	if !item.recursing {
		return
	}

	entries, err := e.search.fsys.ReadDir(dirPath(item.path))
	if err != nil && len(entries) == 0 {
		e.pushError(opReadDir, item.path, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && !e.search.ignore.Ignores(entry.Name()) {
			e.push(pending{
				kind:      itemFolder,
				path:      filepath.Join(item.path, entry.Name()),
				index:     item.index,
				recursing: true,
			})
		}
	}
	if err != nil {
		e.pushError(opReadEntry, item.path, err)
	}
}

func (e *Explorer) expandFilter(item pending, seg Segment) {
	last := item.index == len(e.search.segments)-1

	entries, err := e.search.fsys.ReadDir(dirPath(item.path))
	if err != nil && len(entries) == 0 {
		e.pushError(opReadDir, item.path, err)
		return
	}

	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(item.path, name)

		switch {
		case entry.Type().IsRegular():
			if last && seg.Filter.MatchString(name) {
				e.push(pending{kind: itemFile, path: path})
			}
		case entry.IsDir():
			if e.search.ignore.Ignores(name) {
				continue
			}
			dirs = append(dirs, path)
			if !seg.Filter.MatchString(name) {
				continue
			}
			if !last {
				e.push(pending{kind: itemFolder, path: path, index: item.index + 1})
			} else if e.search.includeDirs {
				e.push(pending{kind: itemDir, path: path})
			}
		}
	}
	if err != nil {
		e.pushError(opReadEntry, item.path, err)
	}

	if item.recursing {
		for _, dir := range dirs {
			e.push(pending{kind: itemFolder, path: dir, index: item.index, recursing: true})
		}
	}
}

// expandTrailing handles a pattern ending in **: every directory reached is
// itself a match, files are not.
func (e *Explorer) expandTrailing(item pending) {
	if !e.search.includeDirs {
		return
	}
	e.push(pending{kind: itemDir, path: item.path})

	entries, err := e.search.fsys.ReadDir(dirPath(item.path))
	if err != nil && len(entries) == 0 {
		e.pushError(opReadDir, item.path, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && !e.search.ignore.Ignores(entry.Name()) {
			e.push(pending{
				kind:      itemFolder,
				path:      filepath.Join(item.path, entry.Name()),
				index:     item.index,
				recursing: true,
			})
		}
	}
	if err != nil {
		e.pushError(opReadEntry, item.path, err)
	}
}

// dirPath maps the empty root to the current directory.
func dirPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}
