package config

import (
	"path/filepath"
	"strings"

	"github.com/fileseg/fileseg/internal/security"
	"github.com/fileseg/fileseg/pkg/types"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false, nil) are replaced with defaults; explicit values
// are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStorageDefaults(&cfg.Storage)
	applyIODefaults(&cfg.IO)
	applyChunkingDefaults(&cfg.Chunking)
	applySecurityDefaults(&cfg.Security)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
}

func applyStorageDefaults(cfg *StorageConfig) {
	if cfg.Path == "" {
		cfg.Path = filepath.Join(getConfigDir(), "index.db")
	}
}

func applyIODefaults(cfg *IOConfig) {
	if cfg.SmallFileThreshold == 0 {
		cfg.SmallFileThreshold = types.DefaultSmallFileThreshold
	}
	if cfg.MediumFileThreshold == 0 {
		cfg.MediumFileThreshold = types.DefaultMediumFileThreshold
	}
	if cfg.StreamChunkSize == 0 {
		cfg.StreamChunkSize = types.DefaultStreamChunkSize
	}
}

func applyChunkingDefaults(cfg *ChunkingConfig) {
	defaults := types.DefaultChunkingConfig()
	if cfg.MaxChunkSize == 0 {
		cfg.MaxChunkSize = defaults.MaxChunkSize
		if cfg.OverlapSize == 0 {
			cfg.OverlapSize = defaults.OverlapSize
		}
	}
	if cfg.Strategy == "" {
		cfg.Strategy = string(defaults.Strategy)
	}
}

func applySecurityDefaults(cfg *SecurityConfig) {
	if cfg.DenyPatterns == nil {
		cfg.DenyPatterns = security.DefaultDenyPatterns()
	}
}

// GetDefaultConfig returns a fully defaulted configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Chunking.PreserveMetadata = true
	return cfg
}
