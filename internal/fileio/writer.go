package fileio

import (
	"os"

	"github.com/fileseg/fileseg/pkg/types"
)

// Writer writes a single file through buffered strategies. WriteBytes and
// WriteString replace the file's content; AppendBytes and AppendString reopen
// in append mode per call, so callers doing many small appends should batch.
type Writer struct {
	path     string
	strategy *writeStrategy
}

// OpenWriter prepares path for writing, creating missing parent directories.
func OpenWriter(path string) (*Writer, error) {
	return OpenWriterWith(path, defaultSelector())
}

// OpenWriterWith prepares path for writing using the given selector.
func OpenWriterWith(path string, selector *Selector) (*Writer, error) {
	strategy, err := selector.forWrite(path)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, strategy: strategy}, nil
}

// WriteBytes replaces the file's content with data, flushing before return.
func (w *Writer) WriteBytes(data []byte) error {
	return w.strategy.writeFile(data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// WriteString replaces the file's content with s.
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

// AppendBytes appends data to the file, creating it if absent.
func (w *Writer) AppendBytes(data []byte) error {
	return w.strategy.writeFile(data, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// AppendString appends s to the file.
func (w *Writer) AppendString(s string) error {
	return w.AppendBytes([]byte(s))
}

func defaultSelector() *Selector {
	return &Selector{thresholds: types.DefaultThresholds()}
}
