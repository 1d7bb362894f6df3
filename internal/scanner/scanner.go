package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fileseg/fileseg/pkg/types"
)

// DirectoryScanner enumerates regular files under a root, filtered by glob
// patterns.
type DirectoryScanner struct {
	patterns []string
}

// NewDirectoryScanner builds a scanner with the given initial patterns.
func NewDirectoryScanner(patterns ...string) (*DirectoryScanner, error) {
	s := &DirectoryScanner{}
	for _, pattern := range patterns {
		if err := s.Include(pattern); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Include registers a glob pattern. Pattern syntax errors are detected here,
// before any scan runs.
func (s *DirectoryScanner) Include(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return &types.PatternError{Pattern: pattern, Reason: "malformed glob syntax"}
	}
	s.patterns = append(s.patterns, pattern)
	return nil
}

// Patterns returns the registered patterns.
func (s *DirectoryScanner) Patterns() []string {
	return s.patterns
}

// Scan walks root recursively and returns every regular file matching at
// least one pattern. With no patterns registered, every regular file matches.
// Paths are returned as they are encountered (lexical order within each
// directory).
func (s *DirectoryScanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", root, types.ErrNotFound)
		}
		return nil, fmt.Errorf("stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory: %w", root, types.ErrInvalidPath)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		matched, err := s.matches(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if matched {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", root, err)
	}
	return files, nil
}

func (s *DirectoryScanner) matches(rel string) (bool, error) {
	if len(s.patterns) == 0 {
		return true, nil
	}
	for _, pattern := range s.patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, &types.PatternError{Pattern: pattern, Reason: err.Error()}
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
