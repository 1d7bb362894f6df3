package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileseg/fileseg/pkg/types"
)

func TestAtomicWriter_CommitPublishesExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.WriteString("world")
	require.NoError(t, err)

	tmpPath := w.tmpPath
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = os.Stat(tmpPath)
	assert.True(t, os.IsNotExist(err), "temp file must not survive commit")
}

func TestAtomicWriter_CommitReplacesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	_, err = w.WriteString("new content")
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestAtomicWriter_CancelLeavesTargetUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	_, err = w.WriteString("discarded")
	require.NoError(t, err)

	tmpPath := w.tmpPath
	require.NoError(t, w.Cancel())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	_, err = os.Stat(tmpPath)
	assert.True(t, os.IsNotExist(err), "temp file must not survive cancel")
}

func TestAtomicWriter_CancelWithNoPriorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never-created.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Cancel())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "target must not appear after cancel")
}

func TestAtomicWriter_CloseActsAsCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	_, err = w.WriteString("buffered but never committed")
	require.NoError(t, err)

	tmpPath := w.tmpPath
	require.NoError(t, w.Close())

	_, err = os.Stat(tmpPath)
	assert.True(t, os.IsNotExist(err), "temp file must not survive close")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Close after commit or cancel is a no-op.
	require.NoError(t, w.Close())
}

func TestAtomicWriter_TerminalStateRejectsFurtherUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	_, err = w.WriteString("data")
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	_, err = w.Write([]byte("more"))
	assert.ErrorIs(t, err, types.ErrInvalidState)

	assert.ErrorIs(t, w.Commit(), types.ErrInvalidState)
	assert.ErrorIs(t, w.Cancel(), types.ErrInvalidState)
}

func TestAtomicWriter_TempFileIsSibling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.txt")

	w, err := NewAtomicWriter(path)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.Equal(t, dir, filepath.Dir(w.tmpPath))
	assert.Contains(t, filepath.Base(w.tmpPath), "target.txt")
	assert.True(t, filepath.Ext(w.tmpPath) == ".tmp")
}
