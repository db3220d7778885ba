// Package search runs compiled glob sources and feeds their matches to actions.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/rfind/internal/action"
	"github.com/harrison/rfind/internal/glob"
	"github.com/harrison/rfind/internal/models"
)

// Logger defines the interface for search event logging.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSourceStart(source string, root string)
	LogSourceResult(result models.SourceResult)
	LogTraversalError(err error)
	LogInvalidSource(source string, err error)
	LogSummary(summary models.SearchSummary)
}

// Options controls which sources are searched and which matches are kept.
type Options struct {
	Sources     []string
	SearchFiles bool
	SearchDirs  bool
	Verbose     bool
	Glob        glob.Options
}

// Runner explores each source in order and applies every action to each kept match.
type Runner struct {
	opts    Options
	logger  Logger
	actions []action.Action
}

// NewRunner creates a Runner. With neither SearchFiles nor SearchDirs set,
// both are enabled. The logger parameter is optional and can be nil.
func NewRunner(opts Options, logger Logger, actions ...action.Action) *Runner {
	if !opts.SearchFiles && !opts.SearchDirs {
		opts.SearchFiles = true
		opts.SearchDirs = true
	}
	opts.Glob.IncludeDirs = opts.SearchDirs

	return &Runner{
		opts:    opts,
		logger:  logger,
		actions: actions,
	}
}

// Options returns the effective options.
func (r *Runner) Options() Options {
	return r.opts
}

// Run searches every source. It stops at the first action error or when ctx
// is canceled (including by SIGINT/SIGTERM) and returns the partial summary.
// Actions implementing io.Closer are closed before returning.
func (r *Runner) Run(ctx context.Context) (*models.SearchSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			r.logWarn("Received interrupt signal, stopping search")
			cancel()
		case <-ctx.Done():
		}
	}()

	startTime := time.Now()
	summary := &models.SearchSummary{}

	var runErr error
	for _, source := range r.opts.Sources {
		result, err := r.runSource(ctx, source)
		summary.Add(result)
		if r.logger != nil {
			r.logger.LogSourceResult(result)
		}
		if err != nil {
			runErr = err
			break
		}
	}

	if err := r.closeActions(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	summary.Duration = time.Since(startTime)
	if r.logger != nil {
		r.logger.LogSummary(*summary)
	}

	return summary, runErr
}

// runSource compiles and explores a single source.
func (r *Runner) runSource(ctx context.Context, source string) (models.SourceResult, error) {
	result := models.SourceResult{Source: source}

	search, err := glob.CompileWithOptions(source, r.opts.Glob)
	if err != nil {
		result.Status = models.StatusInvalid
		result.Error = err
		if r.logger != nil {
			r.logger.LogInvalidSource(source, err)
		}
		return result, nil
	}

	if r.logger != nil {
		r.logger.LogSourceStart(source, search.Root())
	}

	start := time.Now()
	explorer := search.Explore()
	for {
		if err := ctx.Err(); err != nil {
			result.Status = models.StatusCanceled
			result.Duration = time.Since(start)
			return result, err
		}

		m, ok := explorer.Next()
		if !ok {
			break
		}

		switch m.Kind {
		case glob.MatchFile:
			if !r.opts.SearchFiles {
				continue
			}
			result.FilesFound++
			if err := r.apply(m.Path, false); err != nil {
				result.Status = models.StatusCanceled
				result.Duration = time.Since(start)
				return result, err
			}
		case glob.MatchDir:
			if !r.opts.SearchDirs {
				continue
			}
			result.DirsFound++
			if err := r.apply(m.Path, true); err != nil {
				result.Status = models.StatusCanceled
				result.Duration = time.Since(start)
				return result, err
			}
		case glob.MatchError:
			result.Errors++
			r.logTraversal(m.Err)
		}
	}

	result.Status = models.StatusSearched
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) apply(path string, isDir bool) error {
	for _, a := range r.actions {
		if err := a.Apply(path, isDir); err != nil {
			return fmt.Errorf("%s action failed for %s: %w", a.Name(), path, err)
		}
	}
	return nil
}

func (r *Runner) closeActions() error {
	var errs []error
	for _, a := range r.actions {
		closer, ok := a.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s action: %w", a.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// logTraversal reports unreadable directories at WARN when verbose, DEBUG otherwise.
func (r *Runner) logTraversal(err error) {
	if r.logger == nil {
		return
	}
	if r.opts.Verbose {
		r.logger.LogTraversalError(err)
		return
	}
	r.logger.LogDebug(err.Error())
}

func (r *Runner) logWarn(message string) {
	if r.logger != nil {
		r.logger.LogWarn(message)
	}
}
