// Package types provides shared type definitions for the fileseg library.
//
// This package defines the domain types used across the I/O and chunking
// components: size classes, chunking configuration, document chunks, and the
// typed error kinds every public operation reports.
//
// # Core Types
//
// DocumentChunk is a bounded, positionally-tracked excerpt of a larger
// document:
//
//	chunk := types.DocumentChunk{
//	    ID:      uuid.NewString(),
//	    Content: excerpt,
//	    Metadata: types.ChunkMetadata{
//	        SourceFile: "notes/meeting.md",
//	        ChunkIndex: 0,
//	        ByteRange:  types.Range{Start: 0, End: 1832},
//	    },
//	}
//
// ChunkingConfig controls how a document is split:
//
//	cfg := types.DefaultChunkingConfig()
//	cfg.Strategy = types.StrategyParagraphBoundary
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Size Classes
//
// FileSizeClass classifies a file by byte length using half-open thresholds.
// Thresholds are injectable so strategy selection stays testable:
//
//	class := types.DefaultThresholds().Classify(info.Size())
//
// # Errors
//
// Error kinds are sentinel errors plus parameterized structs; both compose
// with errors.Is and errors.As:
//
//	if errors.Is(err, types.ErrNotFound) { ... }
//
//	var secErr *types.SecurityError
//	if errors.As(err, &secErr) {
//	    log.Printf("rejected %s: %s", secErr.Path, secErr.Reason)
//	}
package types
