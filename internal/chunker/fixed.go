package chunker

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fileseg/fileseg/pkg/types"
)

// fixedSizeStrategy greedily accumulates codepoints until adding the next one
// would exceed maxChunkSize bytes, then cuts. Cuts always land on codepoint
// boundaries; a single codepoint wider than the limit still gets its own
// chunk rather than being split.
type fixedSizeStrategy struct {
	maxChunkSize int
	overlapSize  int
}

func (s *fixedSizeStrategy) Chunk(content string) ([]types.DocumentChunk, error) {
	if content == "" {
		return nil, nil
	}

	var chunks []types.DocumentChunk
	byteStart, charStart := 0, 0
	byteIdx, charIdx := 0, 0

	emit := func(byteEnd, charEnd int) {
		chunks = append(chunks, types.DocumentChunk{
			ID:      uuid.NewString(),
			Content: content[byteStart:byteEnd],
			Metadata: types.ChunkMetadata{
				ChunkIndex: len(chunks),
				ByteRange:  types.Range{Start: byteStart, End: byteEnd},
				CharRange:  types.Range{Start: charStart, End: charEnd},
			},
		})
		byteStart, charStart = byteEnd, charEnd
	}

	for byteIdx < len(content) {
		_, size := utf8.DecodeRuneInString(content[byteIdx:])
		if byteIdx > byteStart && byteIdx-byteStart+size > s.maxChunkSize {
			emit(byteIdx, charIdx)
		}
		byteIdx += size
		charIdx++
	}
	emit(byteIdx, charIdx)

	return chunks, nil
}

func (s *fixedSizeStrategy) FindBoundaries(content string) []int {
	if content == "" {
		return nil
	}
	boundaries := []int{0}
	byteStart := 0
	byteIdx := 0
	for byteIdx < len(content) {
		_, size := utf8.DecodeRuneInString(content[byteIdx:])
		if byteIdx > byteStart && byteIdx-byteStart+size > s.maxChunkSize {
			boundaries = append(boundaries, byteIdx)
			byteStart = byteIdx
		}
		byteIdx += size
	}
	return boundaries
}

// ApplyOverlap prefixes each chunk from the second onward with the trailing
// overlapSize bytes of its predecessor, snapped backward to the nearest
// codepoint boundary. The next chunk's start position is defined purely by
// this snap; overlap is best-effort context, not an exact-length contract.
func (s *fixedSizeStrategy) ApplyOverlap(chunks []types.DocumentChunk, original string) []types.DocumentChunk {
	if s.overlapSize <= 0 {
		return chunks
	}
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Metadata.ByteRange
		overlapStart := prev.End - s.overlapSize
		if overlapStart < prev.Start {
			overlapStart = prev.Start
		}
		overlapStart = snapToRuneStart(original, overlapStart)
		chunks[i].Content = original[overlapStart:prev.End] + chunks[i].Content
	}
	return chunks
}

// snapToRuneStart moves offset backward until it lands on the first byte of
// an encoded codepoint.
func snapToRuneStart(content string, offset int) int {
	for offset > 0 && !utf8.RuneStart(content[offset]) {
		offset--
	}
	return offset
}
