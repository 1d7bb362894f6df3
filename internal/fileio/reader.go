package fileio

import (
	"fmt"
	"unicode/utf8"

	"github.com/fileseg/fileseg/pkg/types"
)

// Reader reads a single file through the strategy selected for its size. All
// methods are read-only with respect to the underlying file.
type Reader struct {
	path    string
	size    int64
	class   types.FileSizeClass
	backend readBackend
}

// OpenReader opens path for reading with the default thresholds.
func OpenReader(path string) (*Reader, error) {
	return OpenReaderWith(path, types.DefaultThresholds())
}

// OpenReaderWith opens path for reading, classifying it against the given
// thresholds.
func OpenReaderWith(path string, thresholds types.Thresholds) (*Reader, error) {
	selector, err := NewSelector(thresholds)
	if err != nil {
		return nil, err
	}
	backend, class, size, err := selector.forRead(path)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, size: size, class: class, backend: backend}, nil
}

// ReadBytes returns the full file content.
func (r *Reader) ReadBytes() ([]byte, error) {
	return r.backend.readAll()
}

// ReadString returns the full content decoded as UTF-8. Invalid sequences are
// an EncodingError, never silently replaced.
func (r *Reader) ReadString() (string, error) {
	data, err := r.backend.readAll()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &types.EncodingError{Path: r.path, Reason: "content is not valid UTF-8"}
	}
	return string(data), nil
}

// ReadLines decodes the full content and splits it on universal newline
// boundaries (\r\n, \r, \n).
func (r *Reader) ReadLines() ([]string, error) {
	content, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return splitLines(content), nil
}

// ReadChunks iterates fixed-size byte windows of the content regardless of
// strategy. For mapped and streaming handles this walks the mapping directly;
// buffered handles materialize the file first.
func (r *Reader) ReadChunks(chunkSize int64, fn func(offset int64, data []byte) error) error {
	if chunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	return r.backend.readChunks(chunkSize, fn)
}

// NextChunk returns the next sequential window of a streaming handle,
// advancing its cursor, and io.EOF at exhaustion. Buffered and mapped handles
// carry no cursor; callers use ReadBytes or ReadChunks on those instead.
func (r *Reader) NextChunk() ([]byte, error) {
	streaming, ok := r.backend.(*streamingReadStrategy)
	if !ok {
		return nil, fmt.Errorf("sequential reads require a large-class handle: %w", types.ErrInvalidState)
	}
	return streaming.next()
}

// Info returns the file's byte length and size class as observed at open.
func (r *Reader) Info() (int64, types.FileSizeClass) {
	return r.size, r.class
}

// Close releases the strategy's resources. Safe on buffered handles, required
// for mapped and streaming ones.
func (r *Reader) Close() error {
	return r.backend.Close()
}

// splitLines splits on \r\n, \r, and \n. Content after the last terminator
// becomes the final line, so content ending in a terminator yields a trailing
// empty line.
func splitLines(content string) []string {
	lines := make([]string, 0, 16)
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, content[start:i])
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, content[start:])
	return lines
}
