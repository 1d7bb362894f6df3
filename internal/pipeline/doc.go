// Package pipeline coordinates document ingestion: discover files, read them
// through the size-aware I/O layer, chunk the content, and persist documents
// and chunks in SQLite.
//
// Ingestion is concurrent. Files are processed in batches, each batch inside
// its own transaction, with a semaphore bounding parallel reads. Unchanged
// files (same SHA-256 content hash) are skipped unless Force is set.
//
// Only one ingestion may run per Pipeline at a time; a second call returns
// ErrConcurrency immediately instead of blocking.
package pipeline
