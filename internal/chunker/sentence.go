package chunker

import (
	"unicode"
	"unicode/utf8"

	"github.com/fileseg/fileseg/pkg/types"
)

// sentenceStrategy cuts after sentence-final punctuation followed by
// whitespace. It is a deliberately minimal splitter: abbreviations and
// decimal points are not special-cased. Sentence spans are contiguous, so
// chunks with zero overlap concatenate back to the original content.
type sentenceStrategy struct {
	maxChunkSize int
	overlapSize  int
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// sentenceSpans covers the whole content with contiguous spans; trailing
// whitespace after a sentence belongs to that sentence.
func sentenceSpans(content string) []span {
	var spans []span
	start, charStart := 0, 0
	byteIdx, charIdx := 0, 0

	for byteIdx < len(content) {
		r, size := utf8.DecodeRuneInString(content[byteIdx:])
		byteIdx += size
		charIdx++
		if !isSentenceEnd(r) {
			continue
		}

		wsEnd, wsChars := byteIdx, charIdx
		for wsEnd < len(content) {
			next, nextSize := utf8.DecodeRuneInString(content[wsEnd:])
			if !unicode.IsSpace(next) {
				break
			}
			wsEnd += nextSize
			wsChars++
		}
		if wsEnd == byteIdx && wsEnd != len(content) {
			// Punctuation inside a token ("3.14", "e.g.x") is not a cut.
			continue
		}

		spans = append(spans, span{
			text:      content[start:wsEnd],
			byteStart: start,
			byteEnd:   wsEnd,
			charStart: charStart,
			charEnd:   wsChars,
		})
		start, charStart = wsEnd, wsChars
		byteIdx, charIdx = wsEnd, wsChars
	}

	if start < len(content) {
		spans = append(spans, span{
			text:      content[start:],
			byteStart: start,
			byteEnd:   len(content),
			charStart: charStart,
			charEnd:   charIdx,
		})
	}
	return spans
}

func (s *sentenceStrategy) Chunk(content string) ([]types.DocumentChunk, error) {
	spans := sentenceSpans(content)
	if len(spans) == 0 {
		return nil, nil
	}
	return packSpans(content, spans, s.maxChunkSize), nil
}

func (s *sentenceStrategy) FindBoundaries(content string) []int {
	spans := sentenceSpans(content)
	boundaries := make([]int, 0, len(spans))
	for _, sp := range spans {
		boundaries = append(boundaries, sp.byteStart)
	}
	return boundaries
}

// ApplyOverlap prefixes trailing bytes of the previous chunk, snapped
// backward to a codepoint boundary, the same way the fixed-size strategy
// does.
func (s *sentenceStrategy) ApplyOverlap(chunks []types.DocumentChunk, original string) []types.DocumentChunk {
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
