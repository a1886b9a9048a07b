package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
)

// Op identifies an [FS] operation that [Chaos] can fail.
type Op uint8

// Operations that can be failed.
const (
	OpOpen Op = iota
	OpRead
	OpWrite
	OpStat
	OpLock
)

var opNames = [...]string{
	OpOpen:  "open",
	OpRead:  "read",
	OpWrite: "write",
	OpStat:  "stat",
	OpLock:  "lock",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}

	return "unknown"
}

// PathState tracks a sticky fault on a path.
type PathState int

const (
	// PathNormal means no sticky fault. This is the zero value.
	PathNormal PathState = iota
	// PathIOError makes every operation on the path return EIO.
	PathIOError
	// PathReadOnly makes writes and locks on the path return EROFS.
	PathReadOnly
)

// InjectedError marks an error as injected by [Chaos].
// It wraps a *fs.PathError so errors.Is keeps working against the errno.
type InjectedError struct {
	Err error
}

func (e *InjectedError) Error() string {
	return e.Err.Error()
}

func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Chaos].
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Chaos wraps an [FS] and fails selected operations for testing error paths.
//
// Failures are deterministic: an operation armed with [Chaos.Fail] fails on
// every call until [Chaos.Reset], and a path marked with [Chaos.SetPathState]
// stays broken the same way. Everything else passes through.
type Chaos struct {
	fs FS

	mu    sync.RWMutex
	ops   map[Op]syscall.Errno
	paths map[string]PathState

	faults atomic.Int64
}

// NewChaos wraps fsys with no faults armed.
func NewChaos(fsys FS) *Chaos {
	return &Chaos{
		fs:    fsys,
		ops:   make(map[Op]syscall.Errno),
		paths: make(map[string]PathState),
	}
}

// Fail makes every call of op return errno.
func (c *Chaos) Fail(op Op, errno syscall.Errno) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ops[op] = errno
}

// SetPathState sets the sticky fault state of path.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.paths, path)

		return
	}

	c.paths[path] = state
}

// Reset clears all armed operations and path states.
func (c *Chaos) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.ops)
	clear(c.paths)
}

// Faults returns how many errors were injected so far.
func (c *Chaos) Faults() int64 {
	return c.faults.Load()
}

func (c *Chaos) Open(path string) (File, error) {
	if err := c.check(OpOpen, path); err != nil {
		return nil, err
	}

	return c.fs.Open(path)
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.check(OpRead, path); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.check(OpWrite, path); err != nil {
		return err
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.check(OpStat, path); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

func (c *Chaos) Lock(path string) (Locker, error) {
	if err := c.check(OpLock, path); err != nil {
		return nil, err
	}

	return c.fs.Lock(path)
}

// check returns an injected error if op or path is armed to fail.
func (c *Chaos) check(op Op, path string) error {
	c.mu.RLock()
	errno, armed := c.ops[op]
	state := c.paths[path]
	c.mu.RUnlock()

	switch {
	case state == PathIOError:
		errno, armed = syscall.EIO, true
	case state == PathReadOnly && (op == OpWrite || op == OpLock):
		errno, armed = syscall.EROFS, true
	}

	if !armed {
		return nil
	}

	c.faults.Add(1)

	return &InjectedError{Err: &iofs.PathError{Op: op.String(), Path: path, Err: errno}}
}

var _ FS = (*Chaos)(nil)
