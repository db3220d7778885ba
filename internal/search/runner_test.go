package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/harrison/rfind/internal/action"
	"github.com/harrison/rfind/internal/glob"
	"github.com/harrison/rfind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu        sync.Mutex
	debug     []string
	warn      []string
	invalid   []string
	traversal []error
	results   []models.SourceResult
	summaries []models.SearchSummary
}

func (l *recordingLogger) LogDebug(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, message)
}
func (l *recordingLogger) LogInfo(message string) {}
func (l *recordingLogger) LogWarn(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, message)
}
func (l *recordingLogger) LogError(message string)                   {}
func (l *recordingLogger) LogSourceStart(source string, root string) {}
func (l *recordingLogger) LogSourceResult(result models.SourceResult) {
	l.results = append(l.results, result)
}
func (l *recordingLogger) LogTraversalError(err error) {
	l.traversal = append(l.traversal, err)
}
func (l *recordingLogger) LogInvalidSource(source string, err error) {
	l.invalid = append(l.invalid, source)
}
func (l *recordingLogger) LogSummary(summary models.SearchSummary) {
	l.summaries = append(l.summaries, summary)
}

// collectAction records applied paths.
type collectAction struct {
	files  []string
	dirs   []string
	failOn string
	closed int
}

func (c *collectAction) Name() string { return "collect" }

func (c *collectAction) Apply(path string, isDir bool) error {
	if c.failOn != "" && filepath.Base(path) == c.failOn {
		return errors.New("boom")
	}
	if isDir {
		c.dirs = append(c.dirs, filepath.ToSlash(path))
	} else {
		c.files = append(c.files, filepath.ToSlash(path))
	}
	return nil
}

func (c *collectAction) Close() error {
	c.closed++
	return nil
}

var _ action.Action = (*collectAction)(nil)

// makeTree creates files (and their parent directories) under root.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(filepath.ToSlash(root), p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(Options{}, nil)
	assert.True(t, r.Options().SearchFiles)
	assert.True(t, r.Options().SearchDirs)
	assert.True(t, r.Options().Glob.IncludeDirs)

	r = NewRunner(Options{SearchFiles: true}, nil)
	assert.False(t, r.Options().SearchDirs)
	assert.False(t, r.Options().Glob.IncludeDirs)
}

func TestRunFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "docs/b.txt", "docs/sub/c.txt", "docs/sub/d.md")
	pattern := filepath.ToSlash(root) + "/**"

	tests := []struct {
		name      string
		opts      Options
		wantFiles []string
		wantDirs  []string
	}{
		{
			name:      "files only",
			opts:      Options{SearchFiles: true},
			wantFiles: []string{"a.txt", "docs/b.txt", "docs/sub/c.txt", "docs/sub/d.md"},
			wantDirs:  []string{},
		},
		{
			name:      "dirs only",
			opts:      Options{SearchDirs: true},
			wantFiles: []string{},
			wantDirs:  []string{".", "docs", "docs/sub"},
		},
		{
			name:      "both by default",
			opts:      Options{},
			wantFiles: []string{"a.txt", "docs/b.txt", "docs/sub/c.txt", "docs/sub/d.md"},
			wantDirs:  []string{".", "docs", "docs/sub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Sources = []string{pattern + "/*", pattern}
			tt.opts.Glob = glob.DefaultOptions()

			collect := &collectAction{}
			log := &recordingLogger{}
			summary, err := NewRunner(tt.opts, log, collect).Run(context.Background())
			require.NoError(t, err)

			files := relAll(t, root, collect.files)
			dirs := dedupe(relAll(t, root, collect.dirs))
			assert.Equal(t, tt.wantFiles, files)
			assert.Equal(t, tt.wantDirs, dirs)
			assert.Equal(t, len(collect.files), summary.FilesFound)
			assert.Equal(t, len(collect.dirs), summary.DirsFound)
			assert.Equal(t, 0, summary.Errors)
			assert.Equal(t, 1, collect.closed)
			require.Len(t, log.summaries, 1)
		})
	}
}

func dedupe(in []string) []string {
	out := []string{}
	for i, s := range in {
		if i == 0 || in[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

func TestRunInvalidSourceIsSkipped(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "keep.go")

	log := &recordingLogger{}
	collect := &collectAction{}
	opts := Options{
		Sources:     []string{"a{b", filepath.ToSlash(root) + "/*.go"},
		SearchFiles: true,
		Glob:        glob.DefaultOptions(),
	}

	summary, err := NewRunner(opts, log, collect).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Sources)
	assert.Equal(t, 1, summary.InvalidSources)
	assert.False(t, summary.AllInvalid())
	assert.Equal(t, 1, summary.FilesFound)
	assert.Equal(t, []string{"a{b"}, log.invalid)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, models.StatusInvalid, summary.Results[0].Status)
	assert.ErrorIs(t, summary.Results[0].Error, glob.ErrUnclosedBrace)
	assert.Equal(t, models.StatusSearched, summary.Results[1].Status)
}

func TestRunAllInvalid(t *testing.T) {
	opts := Options{Sources: []string{"", "x/**y/z"}, Glob: glob.DefaultOptions()}

	summary, err := NewRunner(opts, nil).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.AllInvalid())
	assert.Equal(t, 0, summary.Matches())
}

func TestRunTraversalErrors(t *testing.T) {
	missing := filepath.ToSlash(filepath.Join(t.TempDir(), "missing"))

	for _, verbose := range []bool{true, false} {
		log := &recordingLogger{}
		opts := Options{
			Sources: []string{missing + "/*.txt"},
			Verbose: verbose,
			Glob:    glob.DefaultOptions(),
		}

		summary, err := NewRunner(opts, log).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Errors)

		if verbose {
			require.Len(t, log.traversal, 1)
			var walkErr *glob.WalkError
			assert.ErrorAs(t, log.traversal[0], &walkErr)
		} else {
			assert.Empty(t, log.traversal)
			require.Len(t, log.debug, 1)
			assert.Contains(t, log.debug[0], "missing")
		}
	}
}

func TestRunActionError(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt", "c.txt")

	collect := &collectAction{failOn: "b.txt"}
	opts := Options{
		Sources:     []string{filepath.ToSlash(root) + "/*.txt", filepath.ToSlash(root) + "/*"},
		SearchFiles: true,
		Glob:        glob.DefaultOptions(),
	}

	summary, err := NewRunner(opts, nil, collect).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect action failed for")
	assert.Contains(t, err.Error(), "b.txt")
	assert.Equal(t, 1, collect.closed, "actions are closed even after a failure")

	// The second source never runs
	assert.Equal(t, 1, summary.Sources)
	assert.Equal(t, models.StatusCanceled, summary.Results[0].Status)
}

func TestRunCanceledContext(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collect := &collectAction{}
	opts := Options{Sources: []string{filepath.ToSlash(root) + "/*"}, Glob: glob.DefaultOptions()}

	summary, err := NewRunner(opts, nil, collect).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Matches())
	assert.Empty(t, collect.files)
	assert.Equal(t, 1, collect.closed)
}

func TestRunExportAction(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "x/one.log", "x/two.log", "y/three.log")
	target := filepath.Join(t.TempDir(), "out.txt")

	opts := Options{
		Sources:     []string{filepath.ToSlash(root) + "/**/*.log"},
		SearchFiles: true,
		Glob:        glob.DefaultOptions(),
	}

	summary, err := NewRunner(opts, nil, action.NewExport(target)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.FilesFound)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	sort.Strings(lines)
	assert.Equal(t, []string{
		filepath.Join(root, "x", "one.log"),
		filepath.Join(root, "x", "two.log"),
		filepath.Join(root, "y", "three.log"),
	}, lines)
}

func TestRunIgnorePolicy(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "src/a.go", ".git/objects/b.go", "vendor/c.go")
	pattern := filepath.ToSlash(root) + "/**/*.go"

	collect := &collectAction{}
	opts := Options{Sources: []string{pattern}, SearchFiles: true, Glob: glob.DefaultOptions()}
	_, err := NewRunner(opts, nil, collect).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.go", "vendor/c.go"}, relAll(t, root, collect.files))

	collect = &collectAction{}
	opts.Glob = glob.Options{IgnoreFolders: []string{"vendor"}}
	_, err = NewRunner(opts, nil, collect).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{".git/objects/b.go", "src/a.go"}, relAll(t, root, collect.files))
}
