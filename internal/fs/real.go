package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// Real implements [FS] using the real filesystem.
//
// Open and ReadFile are passthroughs to the [os] package. [Real.Exists]
// wraps [os.Stat], [Real.WriteFileAtomic] writes through a temp file and
// [Real.Lock] provides file locking.
type Real struct {
	// LockTimeout bounds how long [Real.Lock] waits for a contended lock.
	LockTimeout time.Duration
}

// DefaultLockTimeout is the lock timeout used by [NewReal].
const DefaultLockTimeout = 2 * time.Second

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{LockTimeout: DefaultLockTimeout}
}

// A passthrough wrapper for [os.Open].
func (r *Real) Open(path string) (File, error) {
	return os.Open(path)
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes data to a temp file next to path, syncs it and
// renames it over path with [atomic.ReplaceFile].
//
// A new file gets perm regardless of umask. An existing file keeps its mode.
func (r *Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	mode := perm
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		_ = tmp.Close()

		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file %q: %w", tmpPath, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file %q: %w", tmpPath, err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file %q: %w", tmpPath, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file %q: %w", tmpPath, err)
	}

	if err := atomic.ReplaceFile(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %q: %w", path, err)
	}

	return nil
}

// Exists checks if a file exists using [os.Stat].
// Returns (true, nil) if the file exists, (false, nil) if it does not,
// or (false, err) for other errors.
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// --- Locking ---

const (
	lockSuffix     = ".lock"
	lockPerms      = 0o644
	lockMinBackoff = time.Millisecond
	lockMaxBackoff = 25 * time.Millisecond
)

// realLock holds an exclusive file lock.
type realLock struct {
	path string
	file *os.File
}

// Close removes the lock file, then unlocks and closes it. Waiters that
// opened the removed file notice the inode change and retry on a fresh one.
func (l *realLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = os.Remove(l.path)
	_ = flockRetryEINTR(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil

	return err
}

// Lock acquires an exclusive flock on "<path>.lock", polling with backoff
// (1ms to 25ms) until [Real.LockTimeout] expires.
//
// Returns an error satisfying [errors.Is] with [os.ErrDeadlineExceeded] on
// timeout. The lock file is created if needed and removed on release.
//
// This implementation is Unix-only.
func (r *Real) Lock(path string) (Locker, error) {
	lockPath := path + lockSuffix
	deadline := time.Now().Add(r.LockTimeout)
	backoff := lockMinBackoff

	for {
		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
		if err != nil {
			return nil, fmt.Errorf("opening lock file: %w", err)
		}

		fd := int(file.Fd())

		err = flockRetryEINTR(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			match, statErr := inodeMatchesPath(fd, lockPath)
			if statErr == nil && match {
				return &realLock{path: lockPath, file: file}, nil
			}

			// File was deleted or replaced while we were acquiring; retry.
			_ = flockRetryEINTR(fd, unix.LOCK_UN)
			_ = file.Close()

			if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
				return nil, fmt.Errorf("verifying lock file: %w", statErr)
			}
		} else {
			_ = file.Close()

			if !errors.Is(err, unix.EWOULDBLOCK) {
				return nil, fmt.Errorf("flock: %w", err)
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("locking %s: %w", path, os.ErrDeadlineExceeded)
		}

		time.Sleep(min(backoff, remaining))

		backoff = min(backoff*2, lockMaxBackoff)
	}
}

// inodeMatchesPath reports whether fd still refers to the file at path.
func inodeMatchesPath(fd int, path string) (bool, error) {
	var openStat unix.Stat_t
	if err := unix.Fstat(fd, &openStat); err != nil {
		return false, err
	}

	var pathStat unix.Stat_t
	if err := unix.Stat(path, &pathStat); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return false, os.ErrNotExist
		}

		return false, err
	}

	return openStat.Dev == pathStat.Dev && openStat.Ino == pathStat.Ino, nil
}

// flockRetryEINTR wraps flock, retrying when a signal interrupts the call.
func flockRetryEINTR(fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for range maxEINTRRetries {
		err = unix.Flock(fd, how)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
