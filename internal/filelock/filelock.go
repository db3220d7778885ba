// Package filelock serializes writers of rfind output files across
// goroutines and processes.
//
// Exports are written in full to a temporary sibling and renamed into place
// while an advisory lock on "<target>.lock" is held, so a reader never sees a
// half-written list and two rfind processes exporting to the same file never
// mix their lines.
package filelock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockSuffix is appended to a target path to form its lock file.
const lockSuffix = ".lock"

// retryDelay is the polling interval used by LockContext.
const retryDelay = 50 * time.Millisecond

// FileLock is an exclusive advisory lock backed by a lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock on the given lock file path.
// The file is created on first acquisition.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForTarget returns the lock guarding writes to target.
func ForTarget(target string) *FileLock {
	return NewFileLock(target + lockSuffix)
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock blocks until the exclusive lock is held.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock acquires the lock without blocking. It reports false when another
// holder owns it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// LockContext polls for the lock until it is acquired or ctx is done.
func (fl *FileLock) LockContext(ctx context.Context) error {
	acquired, err := fl.flock.TryLockContext(ctx, retryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, ctx.Err())
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite replaces path with data through a temp file and rename.
// Parent directories are created. On failure the previous content, if any,
// is left untouched and no temp file remains.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory keeps the rename on one filesystem
	tempFile, err := os.CreateTemp(dir, ".rfind-export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// LockAndWrite holds the target's lock while atomically writing data.
// Writing "out.txt" locks "out.txt.lock".
func LockAndWrite(path string, data []byte) error {
	return LockAndWriteContext(context.Background(), path, data)
}

// LockAndWriteContext is LockAndWrite with a cancellable wait for the lock.
func LockAndWriteContext(ctx context.Context, path string, data []byte) error {
	// The lock file lives next to the target.
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	lock := ForTarget(path)
	if err := lock.LockContext(ctx); err != nil {
		return err
	}
	defer lock.Unlock()

	return AtomicWrite(path, data)
}
