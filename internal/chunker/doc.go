// Package chunker splits documents into bounded, positionally-tracked chunks.
//
// An Engine pairs a validated ChunkingConfig with a Strategy. Strategies are
// pure functions from content to chunks: no state survives a call, and the
// same content and config always produce the same sequence.
//
// Every strategy guarantees that chunk boundaries fall on codepoint
// boundaries of the source content, whatever the configured size limit.
// Overlap is a best-effort context aid: prefixes are prepended to chunk
// content only, so byte and char ranges always describe the chunk's own
// extent in the source.
//
// Implemented strategies: fixed-size, paragraph-boundary, and a minimal
// sentence-boundary splitter. ConversationBreak, HTMLStructureAware, and
// SemanticSimilarity are declared in the config enum but not implemented;
// requesting them is an ErrUnsupportedStrategy.
package chunker
