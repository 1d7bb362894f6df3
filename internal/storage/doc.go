// Package storage provides SQLite-based persistence for ingested documents
// and their chunks.
//
// The storage layer manages:
//   - Document metadata (source path, content hash, size class)
//   - Chunk content with byte and character ranges
//   - Chunking configuration used per document
//
// # Database Schema
//
// Tables:
//   - documents: Source files, SHA-256 hashes, size classes
//   - chunks: Chunk content keyed by UUID, with range metadata
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("~/.fileseg/index.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	doc := &storage.Document{SourcePath: "/data/notes.md", ...}
//	err = db.UpsertDocument(ctx, doc)
//
// # Transactions
//
// Use transactions to store a document and all its chunks atomically:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	if err := tx.UpsertDocument(ctx, doc); err != nil {
//	    return err
//	}
//	for _, chunk := range chunks {
//	    if err := tx.InsertChunk(ctx, chunk); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// # Incremental Updates
//
// Compare stored content hashes against the current file to skip unchanged
// documents during re-ingestion.
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// CGO Build:
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "cgo_sqlite"
//
// Pure Go Build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build
package storage
