package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ChunkStrategy selects how a document is split into chunks.
type ChunkStrategy string

const (
	StrategyFixedSize          ChunkStrategy = "fixed_size"
	StrategySentenceBoundary   ChunkStrategy = "sentence_boundary"
	StrategyParagraphBoundary  ChunkStrategy = "paragraph_boundary"
	StrategyConversationBreak  ChunkStrategy = "conversation_break"
	StrategyHTMLStructureAware ChunkStrategy = "html_structure_aware"
	StrategySemanticSimilarity ChunkStrategy = "semantic_similarity"
)

// ChunkFormat describes the textual format of the content being chunked.
type ChunkFormat string

const (
	FormatPlainText   ChunkFormat = "plain_text"
	FormatMarkdown    ChunkFormat = "markdown"
	FormatHTML        ChunkFormat = "html"
	FormatDiscordHTML ChunkFormat = "discord_html"
	FormatJSON        ChunkFormat = "json"
)

// ChunkingConfig controls chunk construction. OverlapSize must be strictly
// smaller than MaxChunkSize; violations are a validation error, never clamped.
type ChunkingConfig struct {
	MaxChunkSize     int           `json:"max_chunk_size"    mapstructure:"max_chunk_size"    validate:"gt=0"`
	OverlapSize      int           `json:"overlap_size"      mapstructure:"overlap_size"      validate:"gte=0,ltfield=MaxChunkSize"`
	Strategy         ChunkStrategy `json:"chunk_strategy"    mapstructure:"chunk_strategy"`
	PreserveMetadata bool          `json:"preserve_metadata" mapstructure:"preserve_metadata"`
	Format           ChunkFormat   `json:"format"            mapstructure:"format"`
}

// DefaultChunkingConfig returns the standard configuration.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		MaxChunkSize:     2000,
		OverlapSize:      200,
		Strategy:         StrategySentenceBoundary,
		PreserveMetadata: true,
		Format:           FormatPlainText,
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field bounds and enum membership.
func (c ChunkingConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}
	switch c.Strategy {
	case StrategyFixedSize, StrategySentenceBoundary, StrategyParagraphBoundary,
		StrategyConversationBreak, StrategyHTMLStructureAware, StrategySemanticSimilarity:
	default:
		return fmt.Errorf("invalid chunking config: unknown strategy %q", c.Strategy)
	}
	switch c.Format {
	case FormatPlainText, FormatMarkdown, FormatHTML, FormatDiscordHTML, FormatJSON:
	default:
		return fmt.Errorf("invalid chunking config: unknown format %q", c.Format)
	}
	return nil
}
