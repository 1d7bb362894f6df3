package chunker

import (
	"fmt"

	"github.com/fileseg/fileseg/pkg/types"
)

// Strategy turns content into an ordered sequence of bounded chunks.
type Strategy interface {
	// Chunk splits content into chunks with populated byte/char ranges and
	// 0-based, strictly increasing chunk indexes.
	Chunk(content string) ([]types.DocumentChunk, error)
	// FindBoundaries returns the strategy's natural cut points (byte
	// offsets, including 0) for external inspection, independent of chunk
	// construction.
	FindBoundaries(content string) []int
	// ApplyOverlap prefixes each chunk from the second onward with trailing
	// context from its predecessor. Ranges are left untouched.
	ApplyOverlap(chunks []types.DocumentChunk, original string) []types.DocumentChunk
}

// NewStrategy constructs the strategy selected by cfg. The config must
// already be validated.
func NewStrategy(cfg types.ChunkingConfig) (Strategy, error) {
	switch cfg.Strategy {
	case types.StrategyFixedSize:
		return &fixedSizeStrategy{maxChunkSize: cfg.MaxChunkSize, overlapSize: cfg.OverlapSize}, nil
	case types.StrategyParagraphBoundary:
		return &paragraphStrategy{maxChunkSize: cfg.MaxChunkSize, overlapSize: cfg.OverlapSize}, nil
	case types.StrategySentenceBoundary:
		return &sentenceStrategy{maxChunkSize: cfg.MaxChunkSize, overlapSize: cfg.OverlapSize}, nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Strategy, types.ErrUnsupportedStrategy)
	}
}

// Engine is a stateless, restartable chunking pipeline: validate once,
// chunk any number of documents.
type Engine struct {
	cfg      types.ChunkingConfig
	strategy Strategy
}

// NewEngine validates cfg and constructs its strategy.
func NewEngine(cfg types.ChunkingConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := NewStrategy(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, strategy: strategy}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() types.ChunkingConfig {
	return e.cfg
}

// Chunk splits content into a finite, non-lazy sequence of chunks, applies
// overlap when configured, and back-fills total counts.
func (e *Engine) Chunk(content string) ([]types.DocumentChunk, error) {
	return e.ChunkDocument(content, "")
}

// ChunkDocument is Chunk with source-file attribution in the metadata.
func (e *Engine) ChunkDocument(content, sourceFile string) ([]types.DocumentChunk, error) {
	if content == "" {
		return nil, nil
	}

	chunks, err := e.strategy.Chunk(content)
	if err != nil {
		return nil, err
	}

	if e.cfg.OverlapSize > 0 {
		chunks = e.strategy.ApplyOverlap(chunks, content)
	}

	total := len(chunks)
	for i := range chunks {
		chunks[i].Metadata.TotalChunks = total
		if e.cfg.PreserveMetadata {
			chunks[i].Metadata.SourceFile = sourceFile
		}
	}
	return chunks, nil
}

// FindBoundaries exposes the strategy's natural cut points for content.
func (e *Engine) FindBoundaries(content string) []int {
	return e.strategy.FindBoundaries(content)
}
