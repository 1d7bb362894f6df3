package fileio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fileseg/fileseg/pkg/types"
)

type atomicState int

const (
	stateWriting atomicState = iota
	stateCommitted
	stateCancelled
)

// AtomicWriter accumulates writes into a sibling temporary file and publishes
// them with a single rename on Commit. If neither Commit nor Cancel runs,
// Close removes the temporary file, discarding unflushed writes: a partial
// write must never become visible under the final path.
type AtomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
	buf     *bufio.Writer
	state   atomicState
}

// NewAtomicWriter creates missing parent directories and opens a temporary
// file in the target's directory. Same-directory placement keeps the final
// rename on one filesystem, which is what makes it atomic.
func NewAtomicWriter(path string) (*AtomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directories for %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for %q: %w", path, err)
	}
	// CreateTemp uses 0600; match the permissions a direct write would get.
	_ = os.Chmod(tmp.Name(), 0o644)

	return &AtomicWriter{
		path:    path,
		tmpPath: tmp.Name(),
		file:    tmp,
		buf:     bufio.NewWriter(tmp),
		state:   stateWriting,
	}, nil
}

// Write appends p to the temporary file's buffer.
func (w *AtomicWriter) Write(p []byte) (int, error) {
	if w.state != stateWriting {
		return 0, fmt.Errorf("write after commit or cancel on %q: %w", w.path, types.ErrInvalidState)
	}
	return w.buf.Write(p)
}

// WriteString appends s to the temporary file's buffer.
func (w *AtomicWriter) WriteString(s string) (int, error) {
	if w.state != stateWriting {
		return 0, fmt.Errorf("write after commit or cancel on %q: %w", w.path, types.ErrInvalidState)
	}
	return w.buf.WriteString(s)
}

// Commit flushes, syncs, and closes the temporary file, then renames it over
// the final path. Observers see either the prior content or the full new
// content, never a mix. On any failure the temporary file is removed and the
// target is left untouched.
func (w *AtomicWriter) Commit() error {
	if w.state != stateWriting {
		return fmt.Errorf("commit on finished writer for %q: %w", w.path, types.ErrInvalidState)
	}

	if err := w.buf.Flush(); err != nil {
		w.discard()
		return fmt.Errorf("flushing temp file for %q: %w", w.path, err)
	}
	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("syncing temp file for %q: %w", w.path, err)
	}
	if err := w.file.Close(); err != nil {
		w.state = stateCancelled
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("closing temp file for %q: %w", w.path, err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		w.state = stateCancelled
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("renaming temp file onto %q: %w", w.path, err)
	}

	w.state = stateCommitted
	// Best effort: persisting the rename itself needs a directory sync on
	// some filesystems.
	syncDir(filepath.Dir(w.path))
	return nil
}

// Cancel discards all buffered writes and removes the temporary file. The
// target path's prior content (or absence) is unchanged.
func (w *AtomicWriter) Cancel() error {
	if w.state != stateWriting {
		return fmt.Errorf("cancel on finished writer for %q: %w", w.path, types.ErrInvalidState)
	}
	w.discard()
	return nil
}

// Close makes AtomicWriter safe to defer: a still-writing handle is
// cancelled, a committed or cancelled one is a no-op.
func (w *AtomicWriter) Close() error {
	if w.state == stateWriting {
		w.discard()
	}
	return nil
}

func (w *AtomicWriter) discard() {
	w.state = stateCancelled
	_ = w.file.Close()
	_ = os.Remove(w.tmpPath)
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
