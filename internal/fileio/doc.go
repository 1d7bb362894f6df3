// Package fileio implements size-adaptive file reading and writing.
//
// A Selector classifies a file by size (using injectable Thresholds) and
// picks one of three read strategies: buffered for small files,
// memory-mapped for medium files, and streaming (a mapping consumed in
// fixed windows) for large files. Writes are always buffered; mapping a
// file for writing would bypass flush ordering.
//
// Read and write strategies are disjoint types, so calling a write
// operation against a handle opened for reading is unrepresentable rather
// than a runtime-checked invariant.
//
// AtomicWriter provides write-to-temp-then-rename semantics: a commit
// either publishes the full content in one rename or leaves the target
// untouched, and the temporary file is removed on every exit path.
package fileio
