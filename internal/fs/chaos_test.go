package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestChaos_Passthrough_WhenNothingArmed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "in.ll")
	chaos := NewChaos(NewReal())

	if err := chaos.WriteFileAtomic(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := chaos.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), "x"; got != want {
		t.Errorf("content=%q, want=%q", got, want)
	}

	if got := chaos.Faults(); got != 0 {
		t.Errorf("faults=%d, want=0", got)
	}
}

func TestChaos_Fail_ReturnsInjectedErrno(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.ll")
	chaos := NewChaos(NewReal())
	chaos.Fail(OpWrite, syscall.ENOSPC)

	err := chaos.WriteFileAtomic(path, []byte("x"), 0o644)
	if !errors.Is(err, syscall.ENOSPC) {
		t.Fatalf("err=%v, want ENOSPC", err)
	}

	if !IsInjected(err) {
		t.Errorf("IsInjected(%v)=false, want true", err)
	}

	var pathErr *iofs.PathError
	if !errors.As(err, &pathErr) || pathErr.Op != "write" || pathErr.Path != path {
		t.Errorf("err=%#v, want PathError{write %s}", err, path)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("failed write should not create %s", path)
	}

	if got := chaos.Faults(); got != 1 {
		t.Errorf("faults=%d, want=1", got)
	}
}

func TestChaos_PathState_IsSticky(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.ll")
	readOnly := filepath.Join(dir, "ro.ll")

	if err := os.WriteFile(readOnly, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	chaos := NewChaos(NewReal())
	chaos.SetPathState(broken, PathIOError)
	chaos.SetPathState(readOnly, PathReadOnly)

	for range 3 {
		if _, err := chaos.ReadFile(broken); !errors.Is(err, syscall.EIO) {
			t.Fatalf("ReadFile(broken) err=%v, want EIO", err)
		}
	}

	if _, err := chaos.ReadFile(readOnly); err != nil {
		t.Errorf("reads on read-only path should pass, got %v", err)
	}

	if _, err := chaos.Lock(readOnly); !errors.Is(err, syscall.EROFS) {
		t.Errorf("Lock(readOnly) err=%v, want EROFS", err)
	}

	chaos.SetPathState(broken, PathNormal)

	if ok, err := chaos.Exists(broken); err != nil || ok {
		t.Errorf("Exists(broken)=(%v, %v), want (false, nil)", ok, err)
	}
}

func TestChaos_Reset_DisarmsEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.ll")
	chaos := NewChaos(NewReal())
	chaos.Fail(OpLock, syscall.EAGAIN)
	chaos.SetPathState(path, PathIOError)
	chaos.Reset()

	lock, err := chaos.Lock(path)
	if err != nil {
		t.Fatalf("Lock after Reset: %v", err)
	}

	if err := lock.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestIsInjected_FalseForRealErrors(t *testing.T) {
	t.Parallel()

	_, err := NewReal().ReadFile(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}

	if IsInjected(err) {
		t.Errorf("IsInjected(%v)=true, want false", err)
	}

	if IsInjected(nil) {
		t.Error("IsInjected(nil)=true, want false")
	}
}
