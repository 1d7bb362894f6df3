package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultChunkingConfig(t *testing.T) {
	cfg := DefaultChunkingConfig()

	assert.Equal(t, 2000, cfg.MaxChunkSize)
	assert.Equal(t, 200, cfg.OverlapSize)
	assert.Equal(t, StrategySentenceBoundary, cfg.Strategy)
	assert.True(t, cfg.PreserveMetadata)
	assert.Equal(t, FormatPlainText, cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestChunkingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ChunkingConfig)
		wantErr bool
	}{
		{"defaults pass", func(c *ChunkingConfig) {}, false},
		{"zero max chunk size", func(c *ChunkingConfig) { c.MaxChunkSize = 0 }, true},
		{"negative overlap", func(c *ChunkingConfig) { c.OverlapSize = -1 }, true},
		{"overlap equals max", func(c *ChunkingConfig) { c.OverlapSize = c.MaxChunkSize }, true},
		{"overlap exceeds max", func(c *ChunkingConfig) { c.OverlapSize = c.MaxChunkSize + 1 }, true},
		{"unknown strategy", func(c *ChunkingConfig) { c.Strategy = "bogus" }, true},
		{"unknown format", func(c *ChunkingConfig) { c.Format = "bogus" }, true},
		{"zero overlap allowed", func(c *ChunkingConfig) { c.OverlapSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultChunkingConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocumentChunk_Validate(t *testing.T) {
	chunk := DocumentChunk{
		ID:      "c1",
		Content: "hello",
		Metadata: ChunkMetadata{
			ChunkIndex: 0,
			ByteRange:  Range{Start: 0, End: 5},
			CharRange:  Range{Start: 0, End: 5},
		},
	}
	assert.NoError(t, chunk.Validate())

	empty := chunk
	empty.Content = ""
	assert.Error(t, empty.Validate())

	invalid := chunk
	invalid.Content = string([]byte{0xff, 0xfe})
	assert.Error(t, invalid.Validate())

	reversed := chunk
	reversed.Metadata.ByteRange = Range{Start: 5, End: 0}
	assert.Error(t, reversed.Validate())
}
