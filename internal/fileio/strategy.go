package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fileseg/fileseg/pkg/types"
)

// readBackend is the read-side access strategy. Exactly one variant is active
// per handle, chosen once at open time and held for the handle's lifetime.
type readBackend interface {
	// readAll returns the full file content as an owned byte slice.
	readAll() ([]byte, error)
	// readChunks walks the content in fixed-size byte windows.
	readChunks(chunkSize int64, fn func(offset int64, data []byte) error) error
	// Close releases whatever the variant holds open.
	Close() error
}

// bufferedReadStrategy serves small files through a buffered reader, opened
// per call.
type bufferedReadStrategy struct {
	path string
}

func (s *bufferedReadStrategy) readAll() ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, wrapIOError(s.path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.path, err)
	}
	return data, nil
}

func (s *bufferedReadStrategy) readChunks(chunkSize int64, fn func(int64, []byte) error) error {
	// Small files fit in memory, so materialize once and window the slice.
	data, err := s.readAll()
	if err != nil {
		return err
	}
	return walkWindows(data, chunkSize, fn)
}

func (s *bufferedReadStrategy) Close() error { return nil }

// mappedReadStrategy serves medium files straight from an OS page-cache
// backed mapping.
type mappedReadStrategy struct {
	path   string
	mapped *mappedFile
}

func (s *mappedReadStrategy) readAll() ([]byte, error) {
	// Copy out of the mapping: the returned slice must stay valid after the
	// handle is closed and the region unmapped.
	out := make([]byte, len(s.mapped.data))
	copy(out, s.mapped.data)
	return out, nil
}

func (s *mappedReadStrategy) readChunks(chunkSize int64, fn func(int64, []byte) error) error {
	return walkWindows(s.mapped.data, chunkSize, fn)
}

func (s *mappedReadStrategy) Close() error { return s.mapped.Close() }

// streamingReadStrategy is a mapping consumed in fixed windows, tracking a
// chunk size and read offset for sequential consumption of large files.
type streamingReadStrategy struct {
	mappedReadStrategy
	chunkSize int64
	offset    int64
}

func (s *streamingReadStrategy) readChunks(chunkSize int64, fn func(int64, []byte) error) error {
	if chunkSize <= 0 {
		chunkSize = s.chunkSize
	}
	return walkWindows(s.mapped.data, chunkSize, fn)
}

// next returns the window at the current offset and advances it. io.EOF marks
// exhaustion.
func (s *streamingReadStrategy) next() ([]byte, error) {
	total := int64(len(s.mapped.data))
	if s.offset >= total {
		return nil, io.EOF
	}
	end := s.offset + s.chunkSize
	if end > total {
		end = total
	}
	window := s.mapped.data[s.offset:end]
	s.offset = end
	return window, nil
}

func walkWindows(data []byte, chunkSize int64, fn func(int64, []byte) error) error {
	if chunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d: %w", chunkSize, types.ErrInvalidState)
	}
	total := int64(len(data))
	for offset := int64(0); offset < total; offset += chunkSize {
		end := offset + chunkSize
		if end > total {
			end = total
		}
		if err := fn(offset, data[offset:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeStrategy is the write-side access strategy. Writes are always
// buffered; memory-mapped writes would bypass flush ordering.
type writeStrategy struct {
	path string
}

// writeFile opens the target with the given flags, writes data through a
// buffered writer, and flushes and syncs before returning.
func (w *writeStrategy) writeFile(data []byte, flag int) error {
	f, err := os.OpenFile(w.path, flag, 0o644)
	if err != nil {
		return wrapIOError(w.path, err)
	}

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %q: %w", w.path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %q: %w", w.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("syncing %q: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", w.path, err)
	}
	return nil
}

// Selector chooses an access strategy from file size alone.
type Selector struct {
	thresholds types.Thresholds
}

// NewSelector builds a selector over the given thresholds.
func NewSelector(thresholds types.Thresholds) (*Selector, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Selector{thresholds: thresholds}, nil
}

// forRead stats the file, classifies it, and constructs the matching read
// strategy: buffered (small), memory-mapped (medium), streaming (large).
func (s *Selector) forRead(path string) (readBackend, types.FileSizeClass, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", 0, wrapIOError(path, err)
	}
	if info.IsDir() {
		return nil, "", 0, fmt.Errorf("%q is a directory: %w", path, types.ErrNotAFile)
	}

	size := info.Size()
	class := s.thresholds.Classify(size)

	switch class {
	case types.SizeSmall:
		return &bufferedReadStrategy{path: path}, class, size, nil
	case types.SizeMedium:
		mapped, err := openMapped(path)
		if err != nil {
			return nil, "", 0, err
		}
		return &mappedReadStrategy{path: path, mapped: mapped}, class, size, nil
	default:
		mapped, err := openMapped(path)
		if err != nil {
			return nil, "", 0, err
		}
		return &streamingReadStrategy{
			mappedReadStrategy: mappedReadStrategy{path: path, mapped: mapped},
			chunkSize:          s.thresholds.StreamChunk,
		}, class, size, nil
	}
}

// forWrite creates missing parent directories and returns the buffered write
// strategy.
func (s *Selector) forWrite(path string) (*writeStrategy, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directories for %q: %w", path, err)
	}
	return &writeStrategy{path: path}, nil
}
