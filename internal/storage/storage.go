package storage

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/fileseg/fileseg/pkg/types"
)

// Storage defines the interface for document and chunk persistence
type Storage interface {
	// Document operations
	UpsertDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, sourcePath string) (*Document, error)
	GetDocumentByID(ctx context.Context, docID int64) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)
	DeleteDocument(ctx context.Context, docID int64) error

	// Chunk operations
	InsertChunk(ctx context.Context, chunk *ChunkRecord) error
	GetChunk(ctx context.Context, chunkID string) (*ChunkRecord, error)
	ListChunksByDocument(ctx context.Context, docID int64) ([]*ChunkRecord, error)
	DeleteChunksByDocument(ctx context.Context, docID int64) error

	// Status operations
	GetStatus(ctx context.Context) (*IndexStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Document represents an ingested source file
type Document struct {
	ID          int64
	SourcePath  string
	ContentHash [32]byte
	SizeBytes   int64
	SizeClass   types.FileSizeClass
	Strategy    types.ChunkStrategy
	ChunkCount  int
	ModTime     time.Time
	IngestedAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChunkRecord is a persisted document chunk
type ChunkRecord struct {
	ID          string // UUID assigned at chunking time
	DocumentID  int64
	ChunkIndex  int
	TotalChunks int
	Content     string
	ContentHash [32]byte
	ByteStart   int
	ByteEnd     int
	CharStart   int
	CharEnd     int
	CreatedAt   time.Time
}

// NewChunkRecord converts an in-memory chunk to its persisted form.
func NewChunkRecord(docID int64, chunk types.DocumentChunk) *ChunkRecord {
	return &ChunkRecord{
		ID:          chunk.ID,
		DocumentID:  docID,
		ChunkIndex:  chunk.Metadata.ChunkIndex,
		TotalChunks: chunk.Metadata.TotalChunks,
		Content:     chunk.Content,
		ContentHash: sha256.Sum256([]byte(chunk.Content)),
		ByteStart:   chunk.Metadata.ByteRange.Start,
		ByteEnd:     chunk.Metadata.ByteRange.End,
		CharStart:   chunk.Metadata.CharRange.Start,
		CharEnd:     chunk.Metadata.CharRange.End,
	}
}

// ToDocumentChunk rebuilds the in-memory chunk with source attribution.
func (r *ChunkRecord) ToDocumentChunk(sourcePath string) types.DocumentChunk {
	return types.DocumentChunk{
		ID:      r.ID,
		Content: r.Content,
		Metadata: types.ChunkMetadata{
			SourceFile:  sourcePath,
			ChunkIndex:  r.ChunkIndex,
			TotalChunks: r.TotalChunks,
			ByteRange:   types.Range{Start: r.ByteStart, End: r.ByteEnd},
			CharRange:   types.Range{Start: r.CharStart, End: r.CharEnd},
		},
	}
}

// IndexStatus summarizes the contents of the chunk index
type IndexStatus struct {
	DocumentCount      int       `json:"document_count"`
	ChunkCount         int       `json:"chunk_count"`
	TotalBytes         int64     `json:"total_bytes"`
	LastIngestedAt     time.Time `json:"last_ingested_at,omitempty"`
	DatabaseAccessible bool      `json:"database_accessible"`
}
