package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fileseg/fileseg/pkg/types"
)

// DefaultDenyPatterns lists paths no operation should touch regardless of
// other policy: system configuration and private key material.
func DefaultDenyPatterns() []string {
	return []string{
		"/etc/**",
		"/root/**",
		"**/*.key",
		"**/*.pem",
		"**/id_rsa*",
		"**/id_ed25519*",
		"**/id_dsa*",
		"**/id_ecdsa*",
	}
}

// Config is the per-session security policy consumed by every path
// validation. Construct once, then treat as immutable.
type Config struct {
	// BaseDir, when set, constrains all validated paths to its subtree
	BaseDir string
	// AllowHidden permits filenames starting with a dot
	AllowHidden bool
	// FollowSymlinks permits the validated path itself to be a symlink
	FollowSymlinks bool
	// MaxDepth limits path component count; 0 means unlimited
	MaxDepth int
	// DenyPatterns are doublestar globs matched against the absolute path
	DenyPatterns []string
}

// NewConfig returns the default policy: hidden files rejected, symlinks
// followed, no base directory, built-in deny patterns.
func NewConfig() *Config {
	return &Config{
		FollowSymlinks: true,
		DenyPatterns:   DefaultDenyPatterns(),
	}
}

// WithBaseDir constrains validated paths to dir's subtree.
func (c *Config) WithBaseDir(dir string) *Config {
	c.BaseDir = dir
	return c
}

// AllowHiddenFiles sets whether dot-prefixed filenames are accepted.
func (c *Config) AllowHiddenFiles(allow bool) *Config {
	c.AllowHidden = allow
	return c
}

// WithMaxDepth limits the number of path components.
func (c *Config) WithMaxDepth(depth int) *Config {
	c.MaxDepth = depth
	return c
}

// WithFollowSymlinks sets whether symlinked targets are accepted.
func (c *Config) WithFollowSymlinks(follow bool) *Config {
	c.FollowSymlinks = follow
	return c
}

// ValidatePath applies the full policy chain: character validation, hidden
// file rejection, depth limit, deny patterns, then canonicalization with
// base-directory containment. Deny patterns run against both the raw and the
// canonical path. Returns the canonical path on success.
func (c *Config) ValidatePath(path string) (string, error) {
	if err := ValidatePathCharacters(path); err != nil {
		return "", err
	}

	if !c.AllowHidden && strings.HasPrefix(filepath.Base(path), ".") {
		return "", &types.SecurityError{Path: path, Reason: "hidden files are not allowed"}
	}

	if c.MaxDepth > 0 {
		if depth := pathDepth(path, c.BaseDir); depth > c.MaxDepth {
			return "", &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path depth %d exceeds maximum %d", depth, c.MaxDepth),
			}
		}
	}

	if err := c.checkDenyPatterns(path); err != nil {
		return "", err
	}

	if !c.FollowSymlinks {
		if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return "", &types.SecurityError{Path: path, Reason: "symlinks are not allowed"}
		}
	}

	canonical, err := ValidatePath(path, c.BaseDir)
	if err != nil {
		return "", err
	}

	// A symlink can give a denied target an innocent name, so deny patterns
	// are checked again once the canonical path is known.
	if err := c.checkDenyPatterns(canonical); err != nil {
		return "", err
	}

	return canonical, nil
}

// ValidateWritePath applies the same policy chain as ValidatePath but allows
// the target itself to not exist yet.
func (c *Config) ValidateWritePath(path string) (string, error) {
	if err := ValidatePathCharacters(path); err != nil {
		return "", err
	}

	if !c.AllowHidden && strings.HasPrefix(filepath.Base(path), ".") {
		return "", &types.SecurityError{Path: path, Reason: "hidden files are not allowed"}
	}

	if c.MaxDepth > 0 {
		if depth := pathDepth(path, c.BaseDir); depth > c.MaxDepth {
			return "", &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path depth %d exceeds maximum %d", depth, c.MaxDepth),
			}
		}
	}

	if err := c.checkDenyPatterns(path); err != nil {
		return "", err
	}

	if !c.FollowSymlinks {
		if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return "", &types.SecurityError{Path: path, Reason: "symlinks are not allowed"}
		}
	}

	canonical, err := ValidateWritePath(path, c.BaseDir)
	if err != nil {
		return "", err
	}

	// Same post-canonicalization check as ValidatePath: the parent directory
	// may itself be a symlink into denied territory.
	if err := c.checkDenyPatterns(canonical); err != nil {
		return "", err
	}

	return canonical, nil
}

func (c *Config) checkDenyPatterns(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", path, types.ErrInvalidPath)
	}
	candidate := filepath.ToSlash(abs)
	for _, pattern := range c.DenyPatterns {
		matched, err := doublestar.Match(pattern, candidate)
		if err != nil {
			return &types.PatternError{Pattern: pattern, Reason: err.Error()}
		}
		if matched {
			return &types.SecurityError{
				Path:   path,
				Reason: fmt.Sprintf("path matches denied pattern %q", pattern),
			}
		}
	}
	return nil
}

// pathDepth counts components, relative to base when the path falls inside it.
func pathDepth(path, base string) int {
	cleaned := filepath.Clean(path)
	if base != "" {
		if rel, err := filepath.Rel(base, cleaned); err == nil && !strings.HasPrefix(rel, "..") {
			cleaned = rel
		}
	}
	cleaned = strings.TrimPrefix(cleaned, string(filepath.Separator))
	if cleaned == "" || cleaned == "." {
		return 0
	}
	return len(strings.Split(cleaned, string(filepath.Separator)))
}
