package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fileseg/fileseg/pkg/types"
)

const paragraphSeparator = "\n\n"

// paragraphStrategy splits on the literal double-newline separator and packs
// whole paragraphs into chunks. A paragraph is never split, even when it
// alone exceeds the size limit.
type paragraphStrategy struct {
	maxChunkSize int
	overlapSize  int
}

// span is a paragraph's location in the source content.
type span struct {
	text      string
	byteStart int
	byteEnd   int
	charStart int
	charEnd   int
}

func paragraphSpans(content string) []span {
	var spans []span
	pos, charPos := 0, 0
	for pos <= len(content) {
		rel := strings.Index(content[pos:], paragraphSeparator)
		end := len(content)
		if rel >= 0 {
			end = pos + rel
		}
		text := content[pos:end]
		chars := utf8.RuneCountInString(text)
		if text != "" {
			spans = append(spans, span{
				text:      text,
				byteStart: pos,
				byteEnd:   end,
				charStart: charPos,
				charEnd:   charPos + chars,
			})
		}
		if rel < 0 {
			break
		}
		pos = end + len(paragraphSeparator)
		charPos += chars + len(paragraphSeparator)
	}
	return spans
}

func (s *paragraphStrategy) Chunk(content string) ([]types.DocumentChunk, error) {
	spans := paragraphSpans(content)
	if len(spans) == 0 {
		return nil, nil
	}
	return packSpans(content, spans, s.maxChunkSize), nil
}

// packSpans groups consecutive spans into chunks, cutting when extending the
// current chunk (separator included) would exceed maxChunkSize. Chunk content
// is sliced from the original, so inner separators are preserved exactly.
func packSpans(content string, spans []span, maxChunkSize int) []types.DocumentChunk {
	var chunks []types.DocumentChunk
	first, last := 0, 0

	emit := func() {
		start, end := spans[first], spans[last]
		chunks = append(chunks, types.DocumentChunk{
			ID:      uuid.NewString(),
			Content: content[start.byteStart:end.byteEnd],
			Metadata: types.ChunkMetadata{
				ChunkIndex: len(chunks),
				ByteRange:  types.Range{Start: start.byteStart, End: end.byteEnd},
				CharRange:  types.Range{Start: start.charStart, End: end.charEnd},
			},
		})
	}

	for i := 1; i < len(spans); i++ {
		if spans[i].byteEnd-spans[first].byteStart > maxChunkSize {
			emit()
			first = i
		}
		last = i
	}
	last = len(spans) - 1
	if first <= last {
		emit()
	}
	return chunks
}

func (s *paragraphStrategy) FindBoundaries(content string) []int {
	spans := paragraphSpans(content)
	boundaries := make([]int, 0, len(spans))
	for _, sp := range spans {
		boundaries = append(boundaries, sp.byteStart)
	}
	return boundaries
}

// ApplyOverlap reuses the trailing paragraph of the previous chunk as a
// bracket-marked context prefix, but only when that paragraph fits inside
// overlapSize. Byte slicing is never used here: paragraph context stays whole
// or is omitted.
func (s *paragraphStrategy) ApplyOverlap(chunks []types.DocumentChunk, original string) []types.DocumentChunk {
	if s.overlapSize <= 0 {
		return chunks
	}
	for i := 1; i < len(chunks); i++ {
		parts := strings.Split(chunks[i-1].Content, paragraphSeparator)
		trailing := parts[len(parts)-1]
		if trailing == "" || len(trailing) > s.overlapSize {
			continue
		}
		chunks[i].Content = "[" + trailing + "]" + paragraphSeparator + chunks[i].Content
	}
	return chunks
}
