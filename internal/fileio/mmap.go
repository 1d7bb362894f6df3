package fileio

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/gofrs/flock"

	"github.com/fileseg/fileseg/pkg/types"
)

// mappedFile owns an open file, an immutable read-only mapping of its full
// contents, and a shared advisory lock held for the mapping's lifetime. The
// lock enforces (against cooperating processes) the invariant that the
// backing file is not truncated or resized while mapped.
type mappedFile struct {
	file *os.File
	data mmap.MMap
	lock *flock.Flock
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapIOError(path, err)
	}

	lock := flock.New(path)
	locked, err := lock.TryRLock()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %q: %w", path, err)
	}
	if !locked {
		_ = f.Close()
		return nil, fmt.Errorf("%q is exclusively locked: %w", path, types.ErrConcurrency)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = lock.Unlock()
		_ = f.Close()
		return nil, fmt.Errorf("mapping %q: %w", path, err)
	}

	return &mappedFile{file: f, data: data, lock: lock}, nil
}

// Close unmaps, releases the lock, and closes the file. The first error wins
// but every release step still runs.
func (m *mappedFile) Close() error {
	var firstErr error
	if err := m.data.Unmap(); err != nil {
		firstErr = fmt.Errorf("unmapping %q: %w", m.file.Name(), err)
	}
	if err := m.lock.Unlock(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("unlocking %q: %w", m.file.Name(), err)
	}
	if err := m.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing %q: %w", m.file.Name(), err)
	}
	return firstErr
}

func wrapIOError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%q: %w", path, types.ErrNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%q: %w", path, types.ErrPermissionDenied)
	default:
		return fmt.Errorf("%q: %w", path, err)
	}
}
