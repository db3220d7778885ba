package glob

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (and directories for entries ending in "/") below a
// fresh temporary directory and returns it.
func makeTree(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

type results struct {
	files []string
	dirs  []string
	errs  []error
}

// collect drains a search and returns slash separated paths relative to base,
// sorted so that assertions do not depend on traversal order.
func collect(t *testing.T, s *Search, base string) results {
	t.Helper()
	var r results
	for m := range s.All() {
		switch m.Kind {
		case MatchFile:
			r.files = append(r.files, rel(t, base, m.Path))
		case MatchDir:
			r.dirs = append(r.dirs, rel(t, base, m.Path))
		case MatchError:
			require.Error(t, m.Err)
			r.errs = append(r.errs, m.Err)
		default:
			t.Fatalf("unexpected match kind %v", m.Kind)
		}
	}
	sort.Strings(r.files)
	sort.Strings(r.dirs)
	return r
}

func rel(t *testing.T, base, path string) string {
	t.Helper()
	r, err := filepath.Rel(base, path)
	require.NoError(t, err)
	return filepath.ToSlash(r)
}

func pattern(root, rest string) string {
	return filepath.ToSlash(root) + "/" + rest
}

func compileIn(t *testing.T, root, rest string, opts Options) *Search {
	t.Helper()
	s, err := CompileWithOptions(pattern(root, rest), opts)
	require.NoError(t, err)
	return s
}

// faultyFS fails reads of selected directories. Directories in partial
// return their entries along with an error, like an enumeration cut short.
type faultyFS struct {
	osFS
	fail    map[string]error
	partial map[string]error
	reads   int
}

func (f *faultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	f.reads++
	if err, ok := f.fail[name]; ok {
		return nil, err
	}
	entries, err := f.osFS.ReadDir(name)
	if err != nil {
		return entries, err
	}
	if perr, ok := f.partial[name]; ok {
		return entries, perr
	}
	return entries, nil
}

func TestExploreFilterInDirectory(t *testing.T) {
	root := makeTree(t, "dir/a.txt", "dir/b.md")

	r := collect(t, compileIn(t, root, "dir/*.txt", DefaultOptions()), root)
	assert.Equal(t, []string{"dir/a.txt"}, r.files)
	assert.Empty(t, r.errs)
}

func TestExploreRecursiveLogs(t *testing.T) {
	root := makeTree(t,
		"logs/top.log",
		"logs/a/one.log",
		"logs/a/b/c/deep.LOG",
		"logs/a/b/notes.txt",
		"logs/other.txt",
	)

	r := collect(t, compileIn(t, root, "logs/**/*.log", DefaultOptions()), root)
	assert.Equal(t, []string{"logs/a/b/c/deep.LOG", "logs/a/one.log", "logs/top.log"}, r.files)
	assert.Empty(t, r.errs)
}

func TestExploreAlternation(t *testing.T) {
	root := makeTree(t, "photo.png", "photo.jpg", "photo.gif")

	r := collect(t, compileIn(t, root, "*.{png,jpg}", DefaultOptions()), root)
	assert.Equal(t, []string{"photo.jpg", "photo.png"}, r.files)
}

func TestExploreNegatedClass(t *testing.T) {
	root := makeTree(t, "1report.txt", "report.txt", "9.txt", "a9.txt")

	r := collect(t, compileIn(t, root, "[!0-9]*.txt", DefaultOptions()), root)
	assert.Equal(t, []string{"a9.txt", "report.txt"}, r.files)
}

func TestExplorePosixClass(t *testing.T) {
	root := makeTree(t, "dir/1a.txt", "dir/ab.txt", "dir/7.md")

	r := collect(t, compileIn(t, root, "dir/[[:digit:]]*.txt", DefaultOptions()), root)
	assert.Equal(t, []string{"dir/1a.txt"}, r.files)
	assert.Empty(t, r.errs)
}

func TestExploreCaseInsensitive(t *testing.T) {
	root := makeTree(t, "report.txt")

	r := collect(t, compileIn(t, root, "*.TXT", DefaultOptions()), root)
	assert.Equal(t, []string{"report.txt"}, r.files)
}

func TestExploreIgnoresGitFolders(t *testing.T) {
	root := makeTree(t,
		"repo/main.go",
		"repo/.git/config",
		"repo/.git/hooks/pre-commit.go",
		"repo/pkg/util.go",
		"repo/pkg/.GIT/objects.go",
	)

	r := collect(t, compileIn(t, root, "repo/**/*", DefaultOptions()), root)
	assert.Equal(t, []string{"repo/main.go", "repo/pkg/util.go"}, r.files)

	r = collect(t, compileIn(t, root, "repo/**/config", DefaultOptions()), root)
	assert.Empty(t, r.files)

	r = collect(t, compileIn(t, root, "repo/*/*.go", DefaultOptions()), root)
	assert.Equal(t, []string{"repo/pkg/util.go"}, r.files)
}

func TestExploreIgnoreListIsConfigurable(t *testing.T) {
	root := makeTree(t,
		"repo/.git/config",
		"repo/node_modules/config",
		"repo/src/config",
	)

	opts := DefaultOptions()
	opts.IgnoreFolders = []string{}
	r := collect(t, compileIn(t, root, "repo/**/config", opts), root)
	assert.Equal(t, []string{"repo/.git/config", "repo/node_modules/config", "repo/src/config"}, r.files)

	opts.IgnoreFolders = []string{"Node_Modules"}
	r = collect(t, compileIn(t, root, "repo/**/config", opts), root)
	assert.Equal(t, []string{"repo/.git/config", "repo/src/config"}, r.files)
}

func TestExploreExplicitIgnoredFolder(t *testing.T) {
	root := makeTree(t, "repo/.git/config", "repo/.git/HEAD")

	r := collect(t, compileIn(t, root, "repo/.git/*", DefaultOptions()), root)
	assert.Equal(t, []string{"repo/.git/HEAD", "repo/.git/config"}, r.files)
}

func TestExploreUnreadableDirectory(t *testing.T) {
	root := makeTree(t,
		"tree/a/x.log",
		"tree/a/sub/y.log",
		"tree/locked/z.log",
		"tree/c/w.log",
	)
	locked := filepath.Join(root, "tree", "locked")

	s := compileIn(t, root, "tree/**/*.log", DefaultOptions())
	s.fsys = &faultyFS{fail: map[string]error{locked: fs.ErrPermission}}

	r := collect(t, s, root)
	assert.Equal(t, []string{"tree/a/sub/y.log", "tree/a/x.log", "tree/c/w.log"}, r.files)
	require.Len(t, r.errs, 1)

	var werr *WalkError
	require.True(t, errors.As(r.errs[0], &werr))
	assert.Equal(t, "read dir", werr.Op)
	assert.Equal(t, locked, werr.Path)
	assert.ErrorIs(t, r.errs[0], fs.ErrPermission)
}

func TestExploreUnreadableDirectoryOnDisk(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := makeTree(t, "tree/a/x.log", "tree/locked/z.log", "tree/c/w.log")
	locked := filepath.Join(root, "tree", "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	r := collect(t, compileIn(t, root, "tree/**/*.log", DefaultOptions()), root)
	assert.Equal(t, []string{"tree/a/x.log", "tree/c/w.log"}, r.files)
	require.Len(t, r.errs, 1)
	assert.ErrorIs(t, r.errs[0], fs.ErrPermission)
}

func TestExplorePartialEnumeration(t *testing.T) {
	root := makeTree(t, "dir/a.txt", "dir/b.txt")
	dir := filepath.Join(root, "dir")
	cut := errors.New("entry vanished")

	s := compileIn(t, root, "dir/*.txt", DefaultOptions())
	s.fsys = &faultyFS{partial: map[string]error{dir: cut}}

	r := collect(t, s, root)
	assert.Equal(t, []string{"dir/a.txt", "dir/b.txt"}, r.files)
	require.Len(t, r.errs, 1)

	var werr *WalkError
	require.True(t, errors.As(r.errs[0], &werr))
	assert.Equal(t, "read entry", werr.Op)
	assert.ErrorIs(t, r.errs[0], cut)
}

func TestExploreMissingRoot(t *testing.T) {
	root := t.TempDir()

	s := compileIn(t, root, "missing/*.txt", DefaultOptions())
	r := collect(t, s, root)
	assert.Empty(t, r.files)
	require.Len(t, r.errs, 1)
	assert.ErrorIs(t, r.errs[0], fs.ErrNotExist)
}

func TestExploreIsRepeatable(t *testing.T) {
	root := makeTree(t, "a/1.txt", "a/b/2.txt", "c/3.txt", "c/d/e/4.txt", "5.md")
	s := compileIn(t, root, "**/*.txt", DefaultOptions())

	first := collect(t, s, root)
	second := collect(t, s, root)
	assert.Len(t, first.files, 4)
	assert.Equal(t, first.files, second.files)
}

func TestExploreLiteralPattern(t *testing.T) {
	root := makeTree(t, "dir/file.txt", "dir/sub/")

	r := collect(t, compileIn(t, root, "dir/file.txt", DefaultOptions()), root)
	assert.Equal(t, []string{"dir/file.txt"}, r.files)

	r = collect(t, compileIn(t, root, "dir/nothing.txt", DefaultOptions()), root)
	assert.Empty(t, r.files)
	assert.Empty(t, r.errs)

	r = collect(t, compileIn(t, root, "dir/sub", DefaultOptions()), root)
	assert.Empty(t, r.files)
	assert.Empty(t, r.dirs)

	opts := DefaultOptions()
	opts.IncludeDirs = true
	r = collect(t, compileIn(t, root, "dir/sub", opts), root)
	assert.Equal(t, []string{"dir/sub"}, r.dirs)
}

func TestExploreConstantAfterFilter(t *testing.T) {
	root := makeTree(t,
		"proj/alpha/target.txt",
		"proj/beta/target.txt",
		"proj/beta/other.txt",
		"proj/gamma/",
		"proj/target.txt/",
	)

	r := collect(t, compileIn(t, root, "proj/*/target.txt", DefaultOptions()), root)
	assert.Equal(t, []string{"proj/alpha/target.txt", "proj/beta/target.txt"}, r.files)
}

func TestExploreRecurseThenConstant(t *testing.T) {
	root := makeTree(t,
		"src/go.mod",
		"src/a/go.mod",
		"src/a/b/c/go.mod",
		"src/a/b/c/go.sum",
		"src/.git/go.mod",
	)

	r := collect(t, compileIn(t, root, "src/**/go.mod", DefaultOptions()), root)
	assert.Equal(t, []string{"src/a/b/c/go.mod", "src/a/go.mod", "src/go.mod"}, r.files)
}

func TestExploreRecurseInMiddle(t *testing.T) {
	root := makeTree(t,
		"ws/p1/target/release/app.d",
		"ws/p2/x/target/release/app.d",
		"ws/p3/target/debug/app.d",
	)

	r := collect(t, compileIn(t, root, "ws/**/target/release/*.d", DefaultOptions()), root)
	assert.Equal(t, []string{"ws/p1/target/release/app.d", "ws/p2/x/target/release/app.d"}, r.files)
}

func TestExploreIncludeDirs(t *testing.T) {
	root := makeTree(t,
		"base/docs/",
		"base/data/",
		"base/.git/",
		"base/dump.txt",
		"base/nested/deep/data/",
	)
	opts := DefaultOptions()
	opts.IncludeDirs = true

	r := collect(t, compileIn(t, root, "base/d*", opts), root)
	assert.Equal(t, []string{"base/data", "base/docs"}, r.dirs)
	assert.Equal(t, []string{"base/dump.txt"}, r.files)

	r = collect(t, compileIn(t, root, "base/**/data", opts), root)
	assert.Equal(t, []string{"base/data", "base/nested/deep/data"}, r.dirs)

	r = collect(t, compileIn(t, root, "base/*", opts), root)
	assert.NotContains(t, r.dirs, "base/.git")

	r = collect(t, compileIn(t, root, "base/d*", DefaultOptions()), root)
	assert.Empty(t, r.dirs)
}

func TestExploreTrailingRecurse(t *testing.T) {
	root := makeTree(t, "top/a/b/", "top/c/", "top/.git/x/", "top/file.txt")

	opts := DefaultOptions()
	opts.IncludeDirs = true
	r := collect(t, compileIn(t, root, "top/**", opts), root)
	assert.Equal(t, []string{"top", "top/a", "top/a/b", "top/c"}, r.dirs)
	assert.Empty(t, r.files)

	r = collect(t, compileIn(t, root, "top/**", DefaultOptions()), root)
	assert.Empty(t, r.dirs)
	assert.Empty(t, r.files)
}

func TestExploreIsLazy(t *testing.T) {
	var entries []string
	for _, d := range []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7"} {
		entries = append(entries, "lazy/"+d+"/f.txt")
	}
	root := makeTree(t, entries...)

	s := compileIn(t, root, "lazy/**/f.txt", DefaultOptions())
	ffs := &faultyFS{}
	s.fsys = ffs

	e := s.Explore()
	m, ok := e.Next()
	require.True(t, ok)
	assert.Equal(t, MatchFile, m.Kind)
	assert.LessOrEqual(t, ffs.reads, 2)
	assert.Greater(t, e.Pending(), 0)

	count := 1
	for {
		if _, ok := e.Next(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, 8, count)
	assert.Equal(t, 9, ffs.reads)
	assert.Equal(t, 0, e.Pending())
}

func TestExploreEarlyStop(t *testing.T) {
	root := makeTree(t, "s/a.txt", "s/b.txt", "s/c.txt")
	s := compileIn(t, root, "s/*.txt", DefaultOptions())

	n := 0
	for range s.All() {
		n++
		if n == 1 {
			break
		}
	}
	assert.Equal(t, 1, n)
}

func TestExploreRelativeRoot(t *testing.T) {
	root := makeTree(t, "one.txt", "sub/two.txt")
	t.Chdir(root)

	s, err := Compile("*.txt")
	require.NoError(t, err)
	var got []string
	for m := range s.All() {
		require.Equal(t, MatchFile, m.Kind)
		got = append(got, m.Path)
	}
	assert.Equal(t, []string{"one.txt"}, got)

	s, err = Compile("**/*.txt")
	require.NoError(t, err)
	got = nil
	for m := range s.All() {
		got = append(got, filepath.ToSlash(m.Path))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"one.txt", "sub/two.txt"}, got)
}
