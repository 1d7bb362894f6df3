package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileseg/fileseg/pkg/types"
)

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScan_NoPatternsMatchesEverything(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":       "a",
		"sub/b.md":    "b",
		"sub/deep/c":  "c",
		"sub/deep/.d": "d",
	})

	s, err := NewDirectoryScanner()
	require.NoError(t, err)

	files, err := s.Scan(root)
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestScan_GlobFilters(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":         "a",
		"b.md":          "b",
		"sub/c.txt":     "c",
		"sub/deep/d.go": "d",
	})

	s, err := NewDirectoryScanner("**/*.txt")
	require.NoError(t, err)

	files, err := s.Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(root, "a.txt"))
	assert.Contains(t, files, filepath.Join(root, "sub", "c.txt"))
}

func TestScan_MultiplePatterns(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":    "a",
		"b.md":     "b",
		"c.go":     "c",
		"sub/d.md": "d",
	})

	s, err := NewDirectoryScanner("*.txt")
	require.NoError(t, err)
	require.NoError(t, s.Include("**/*.md"))

	files, err := s.Scan(root)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestInclude_RejectsMalformedPattern(t *testing.T) {
	s, err := NewDirectoryScanner()
	require.NoError(t, err)

	err = s.Include("[unclosed")
	var patErr *types.PatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, "[unclosed", patErr.Pattern)
}

func TestScan_Errors(t *testing.T) {
	s, err := NewDirectoryScanner()
	require.NoError(t, err)

	_, err = s.Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, types.ErrNotFound)

	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = s.Scan(file)
	assert.ErrorIs(t, err, types.ErrInvalidPath)
}
