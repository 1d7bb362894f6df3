package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra context. Callers match
// them with errors.Is.
var (
	// ErrNotFound is returned when a requested file or record doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the OS denies access to a path
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidPath is returned for paths that are syntactically unusable
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotAFile is returned when a regular file was expected
	ErrNotAFile = errors.New("not a regular file")
	// ErrDirectoryNotEmpty is returned when a directory operation requires emptiness
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	// ErrTimeout is returned when an operation exceeds its deadline
	ErrTimeout = errors.New("operation timed out")
	// ErrConcurrency is returned when an exclusive operation is already running
	ErrConcurrency = errors.New("concurrent operation in progress")
	// ErrInsufficientSpace is returned when the filesystem cannot hold a write
	ErrInsufficientSpace = errors.New("insufficient space")
	// ErrInvalidState is returned when an operation is invalid for the active
	// strategy variant or writer state. It is an internal-error condition, not
	// a panic path.
	ErrInvalidState = errors.New("invalid state for operation")
	// ErrUnsupportedStrategy is returned for declared-but-unimplemented
	// chunking strategies
	ErrUnsupportedStrategy = errors.New("chunk strategy not implemented")
)

// SecurityError reports a path that violated the configured security policy.
// Validation happens before any filesystem mutation.
type SecurityError struct {
	Path   string
	Reason string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security violation on %q: %s", e.Path, e.Reason)
}

// EncodingError reports content that is not valid under the expected text
// encoding. Decoding never substitutes replacement characters.
type EncodingError struct {
	Path   string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error in %q: %s", e.Path, e.Reason)
}

// TooLargeError reports content exceeding a configured size limit.
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("content too large: %d bytes exceeds limit of %d", e.Size, e.Max)
}

// PatternError reports a glob pattern that failed to compile.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}

// InternalError wraps conditions that indicate a bug in this library rather
// than bad input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
