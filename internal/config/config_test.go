package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileseg/fileseg/pkg/types"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	// Explicit missing file is an error; the default search path is not.
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, int64(types.DefaultSmallFileThreshold), cfg.IO.SmallFileThreshold)
	assert.Equal(t, int64(types.DefaultMediumFileThreshold), cfg.IO.MediumFileThreshold)
	assert.Equal(t, string(types.StrategySentenceBoundary), cfg.Chunking.Strategy)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.NotEmpty(t, cfg.Security.DenyPatterns)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: json
storage:
  path: /tmp/fileseg-test.db
io:
  small_file_threshold: 4096
  medium_file_threshold: 65536
chunking:
  max_chunk_size: 500
  overlap_size: 50
  strategy: fixed_size
security:
  base_dir: /data
  max_depth: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Level is normalized to uppercase.
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/fileseg-test.db", cfg.Storage.Path)
	assert.Equal(t, int64(4096), cfg.IO.SmallFileThreshold)
	assert.Equal(t, int64(65536), cfg.IO.MediumFileThreshold)
	assert.Equal(t, 500, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, "/data", cfg.Security.BaseDir)
	assert.Equal(t, 8, cfg.Security.MaxDepth)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FILESEG_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, Validate(cfg))

	cfg = GetDefaultConfig()
	cfg.IO.MediumFileThreshold = cfg.IO.SmallFileThreshold - 1
	assert.Error(t, Validate(cfg))

	// Overlap must be strictly smaller than the chunk size.
	cfg = GetDefaultConfig()
	cfg.Chunking.OverlapSize = cfg.Chunking.MaxChunkSize
	assert.Error(t, Validate(cfg))

	cfg = GetDefaultConfig()
	cfg.Chunking.Strategy = "telepathy"
	assert.Error(t, Validate(cfg))
}

func TestThresholdsConversion(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.IO = IOConfig{SmallFileThreshold: 100, MediumFileThreshold: 200, StreamChunkSize: 50}

	th := cfg.Thresholds()
	assert.Equal(t, int64(100), th.SmallFile)
	assert.Equal(t, int64(200), th.MediumFile)
	assert.Equal(t, int64(50), th.StreamChunk)
}

func TestSecurityPolicyConversion(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Security.BaseDir = "/srv/data"
	cfg.Security.AllowHidden = true
	cfg.Security.MaxDepth = 4
	cfg.Security.DenyPatterns = []string{"**/*.secret"}

	policy := cfg.SecurityPolicy()
	assert.Equal(t, "/srv/data", policy.BaseDir)
	assert.True(t, policy.AllowHidden)
	assert.Equal(t, 4, policy.MaxDepth)
	assert.Equal(t, []string{"**/*.secret"}, policy.DenyPatterns)
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.Chunking.PreserveMetadata)
}
