package fileio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileseg/fileseg/pkg/types"
)

// tinyThresholds makes medium and large classifications reachable without
// multi-megabyte fixtures.
func tinyThresholds() types.Thresholds {
	return types.Thresholds{SmallFile: 4, MediumFile: 8, StreamChunk: 3}
}

func writeFixture(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpenReader_SmallBuffered(t *testing.T) {
	path := writeFixture(t, []byte("hello\nworld\n"))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	size, class := r.Info()
	assert.Equal(t, int64(12), size)
	assert.Equal(t, types.SizeSmall, class)

	data, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\nworld\n"), data)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", s)
}

func TestOpenReaderWith_MediumIsMapped(t *testing.T) {
	path := writeFixture(t, []byte("abcdef")) // 6 bytes: [4, 8) -> medium

	r, err := OpenReaderWith(path, tinyThresholds())
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, class := r.Info()
	assert.Equal(t, types.SizeMedium, class)
	assert.IsType(t, &mappedReadStrategy{}, r.backend)

	data, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), data)
}

func TestOpenReaderWith_LargeIsStreaming(t *testing.T) {
	content := []byte("0123456789") // 10 bytes: >= 8 -> large
	path := writeFixture(t, content)

	r, err := OpenReaderWith(path, tinyThresholds())
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, class := r.Info()
	assert.Equal(t, types.SizeLarge, class)

	streaming, ok := r.backend.(*streamingReadStrategy)
	require.True(t, ok)
	assert.Equal(t, int64(3), streaming.chunkSize)

	first, err := r.NextChunk()
	require.NoError(t, err)
	assert.Equal(t, []byte("012"), first)

	second, err := r.NextChunk()
	require.NoError(t, err)
	assert.Equal(t, []byte("345"), second)
}

func TestNextChunk_ExhaustsToEOF(t *testing.T) {
	path := writeFixture(t, []byte("0123456789")) // 10 bytes: >= 8 -> large

	r, err := OpenReaderWith(path, tinyThresholds())
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	var rebuilt bytes.Buffer
	for {
		window, err := r.NextChunk()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rebuilt.Write(window)
	}
	assert.Equal(t, "0123456789", rebuilt.String())
}

func TestNextChunk_RequiresStreamingHandle(t *testing.T) {
	path := writeFixture(t, []byte("tiny"))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.NextChunk()
	assert.ErrorIs(t, err, types.ErrInvalidState)
}

func TestReadChunks_ReconstructsContent(t *testing.T) {
	content := []byte("the quick brown fox jumps over the lazy dog")
	path := writeFixture(t, content)

	for _, th := range []types.Thresholds{types.DefaultThresholds(), tinyThresholds()} {
		r, err := OpenReaderWith(path, th)
		require.NoError(t, err)

		var rebuilt bytes.Buffer
		var lastOffset int64 = -1
		err = r.ReadChunks(7, func(offset int64, data []byte) error {
			assert.Greater(t, offset, lastOffset)
			lastOffset = offset
			rebuilt.Write(data)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, content, rebuilt.Bytes())
		require.NoError(t, r.Close())
	}
}

func TestReadChunks_RejectsNonPositiveSize(t *testing.T) {
	path := writeFixture(t, []byte("data"))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.Error(t, r.ReadChunks(0, func(int64, []byte) error { return nil }))
	assert.Error(t, r.ReadChunks(-1, func(int64, []byte) error { return nil }))
}

func TestReadString_InvalidUTF8(t *testing.T) {
	path := writeFixture(t, []byte{'h', 'i', 0xff, 0xfe})

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.ReadString()
	var encErr *types.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, path, encErr.Path)

	// Raw bytes stay readable.
	data, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

func TestReadLines_UniversalNewlines(t *testing.T) {
	path := writeFixture(t, []byte("unix\nmac\rwindows\r\nlast"))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	lines, err := r.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"unix", "mac", "windows", "last"}, lines)
}

func TestOpenReader_Errors(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = OpenReader(t.TempDir())
	assert.ErrorIs(t, err, types.ErrNotAFile)
}

func TestOpenReaderWith_RejectsBadThresholds(t *testing.T) {
	path := writeFixture(t, []byte("data"))

	_, err := OpenReaderWith(path, types.Thresholds{SmallFile: 10, MediumFile: 5, StreamChunk: 1})
	assert.Error(t, err)
}
