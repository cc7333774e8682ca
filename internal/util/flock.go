// flock.go provides cross-process file locking.
// Used to keep a single liveness monitor per state root.

package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLock provides cross-process file locking. Unlike sync.Mutex which
// only works within a process, FileLock ensures mutual exclusion across
// multiple processes on the same machine.
type FileLock struct {
	path string
	fl   *flock.Flock
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created if it doesn't exist.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

func (l *FileLock) ensure() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}
	if l.fl == nil {
		l.fl = flock.New(l.path)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if it's already held.
func (l *FileLock) TryLock() (bool, error) {
	if err := l.ensure(); err != nil {
		return false, err
	}
	locked, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquiring lock: %w", err)
	}
	return locked, nil
}

// Unlock releases the lock. Safe to call even if not locked.
func (l *FileLock) Unlock() error {
	if l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}
