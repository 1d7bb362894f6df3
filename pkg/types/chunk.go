package types

import (
	"crypto/sha256"
	"errors"
	"time"
	"unicode/utf8"
)

// Range is a half-open [Start, End) span of offsets into a document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of units covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// TimeRange bounds the timestamps covered by a chunk, for sources that carry
// per-entry timestamps (conversation logs, transcripts).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ChunkMetadata describes where a chunk came from and how it relates to its
// neighbors. ByteRange and CharRange always fall on codepoint boundaries of
// the source content.
type ChunkMetadata struct {
	SourceFile  string `json:"source_file,omitempty"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	ByteRange   Range  `json:"byte_range"`
	CharRange   Range  `json:"char_range"`

	// Optional enrichment populated by format-aware strategies
	TimestampRange *TimeRange `json:"timestamp_range,omitempty"`
	Participants   []string   `json:"participants,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
	ParentChunk    string     `json:"parent_chunk,omitempty"`
	ChildChunks    []string   `json:"child_chunks,omitempty"`
}

// DocumentChunk is a bounded, positionally-tracked excerpt of a document.
// Chunks are immutable once returned by a strategy.
type DocumentChunk struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ContentHash computes the SHA-256 hash of the chunk content, used for
// deduplication and incremental re-chunking.
func (c *DocumentChunk) ContentHash() [32]byte {
	return sha256.Sum256([]byte(c.Content))
}

// Validate checks the chunk's structural invariants.
func (c *DocumentChunk) Validate() error {
	if c.ID == "" {
		return errors.New("chunk ID is required")
	}
	if c.Content == "" {
		return errors.New("chunk content cannot be empty")
	}
	if !utf8.ValidString(c.Content) {
		return errors.New("chunk content is not valid UTF-8")
	}
	if c.Metadata.ChunkIndex < 0 {
		return errors.New("chunk index must be non-negative")
	}
	if c.Metadata.ByteRange.Start < 0 || c.Metadata.ByteRange.End < c.Metadata.ByteRange.Start {
		return errors.New("byte range must be ordered and non-negative")
	}
	if c.Metadata.CharRange.Start < 0 || c.Metadata.CharRange.End < c.Metadata.CharRange.Start {
		return errors.New("char range must be ordered and non-negative")
	}
	return nil
}
