// Package scanner provides glob-filtered directory enumeration and
// polling-based change detection.
//
// DirectoryScanner walks a tree and returns every regular file matching at
// least one registered doublestar pattern (or every file when no patterns
// are registered).
//
// FileWatcher is a watermark-polling design, not an OS-event design: each
// poll compares modification times against the previous poll's timestamp and
// then advances the watermark. Changes that occur and revert between two
// polls are invisible, and a file first observed after creation reports as
// modified. FileWatcher owns mutable scan state and is not safe for
// concurrent polling without external synchronization.
package scanner
