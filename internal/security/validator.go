package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fileseg/fileseg/pkg/types"
)

// ValidatePath rejects traversal sequences, canonicalizes the path (resolving
// symlinks and dot components), and optionally enforces containment inside
// baseDir. The returned path is canonical and absolute and names an existing
// regular file.
func ValidatePath(path, baseDir string) (string, error) {
	// Raw-string pre-check before touching the disk. Canonicalization would
	// also catch these, but rejecting early keeps the error attributable to
	// the caller's input rather than the resolved path.
	if strings.Contains(path, "../") || strings.Contains(path, `..\`) {
		return "", &types.SecurityError{Path: path, Reason: "path traversal sequence detected"}
	}

	canonical, err := Canonicalize(path)
	if err != nil {
		return "", err
	}

	if baseDir != "" {
		canonicalBase, err := Canonicalize(baseDir)
		if err != nil {
			return "", fmt.Errorf("resolving base directory %q: %w", baseDir, err)
		}
		if !withinBase(canonicalBase, canonical) {
			return "", &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path escapes base directory %q", canonicalBase),
			}
		}
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", wrapStatError(canonical, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory: %w", canonical, types.ErrNotAFile)
	}

	return canonical, nil
}

// ValidateWritePath is ValidatePath for targets that may not exist yet: the
// parent directory is canonicalized and containment-checked, and the target
// itself only has to not be a directory.
func ValidateWritePath(path, baseDir string) (string, error) {
	if strings.Contains(path, "../") || strings.Contains(path, `..\`) {
		return "", &types.SecurityError{Path: path, Reason: "path traversal sequence detected"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, types.ErrInvalidPath)
	}
	canonicalDir, err := Canonicalize(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	canonical := filepath.Join(canonicalDir, filepath.Base(abs))

	if baseDir != "" {
		canonicalBase, err := Canonicalize(baseDir)
		if err != nil {
			return "", fmt.Errorf("resolving base directory %q: %w", baseDir, err)
		}
		if !withinBase(canonicalBase, canonical) {
			return "", &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path escapes base directory %q", canonicalBase),
			}
		}
	}

	if info, err := os.Stat(canonical); err == nil && info.IsDir() {
		return "", fmt.Errorf("%q is a directory: %w", canonical, types.ErrNotAFile)
	}

	return canonical, nil
}

// ValidatePathCharacters rejects NUL bytes and non-whitespace control
// characters anywhere in the path.
func ValidatePathCharacters(path string) error {
	for _, r := range path {
		if r == 0 {
			return &types.SecurityError{Path: path, Reason: "path contains NUL byte"}
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path contains control character U+%04X", r),
			}
		}
	}
	return nil
}

// Canonicalize resolves a path to absolute form, following symlinks and
// collapsing dot components. The target must exist.
func Canonicalize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", types.ErrInvalidPath)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, types.ErrInvalidPath)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", wrapStatError(abs, err)
	}
	return resolved, nil
}

func withinBase(base, target string) bool {
	if target == base {
		return true
	}
	return strings.HasPrefix(target, base+string(filepath.Separator))
}

func wrapStatError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%q: %w", path, types.ErrNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%q: %w", path, types.ErrPermissionDenied)
	default:
		return fmt.Errorf("stat %q: %w", path, err)
	}
}
