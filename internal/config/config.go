package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/fileseg/fileseg/internal/security"
	"github.com/fileseg/fileseg/pkg/types"
)

// Config represents the complete fileseg configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (FILESEG_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Storage configures the SQLite chunk index
	Storage StorageConfig `mapstructure:"storage"`

	// IO configures the size-class thresholds for file reads
	IO IOConfig `mapstructure:"io"`

	// Chunking sets the default chunking parameters
	Chunking ChunkingConfig `mapstructure:"chunking"`

	// Security restricts which paths may be read or written
	Security SecurityConfig `mapstructure:"security"`

	// Ingest tunes the ingestion worker pool
	Ingest IngestConfig `mapstructure:"ingest"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// StorageConfig configures the chunk index database.
type StorageConfig struct {
	// Path is the SQLite database file location
	Path string `mapstructure:"path" validate:"required"`
}

// IOConfig holds the size-class thresholds, in bytes.
type IOConfig struct {
	// SmallFileThreshold is the upper bound (exclusive) of the small class
	SmallFileThreshold int64 `mapstructure:"small_file_threshold" validate:"gt=0"`

	// MediumFileThreshold is the upper bound (exclusive) of the medium class
	MediumFileThreshold int64 `mapstructure:"medium_file_threshold" validate:"gt=0,gtfield=SmallFileThreshold"`

	// StreamChunkSize is the window size for streaming large-file reads
	StreamChunkSize int64 `mapstructure:"stream_chunk_size" validate:"gt=0"`
}

// ChunkingConfig sets the default document chunking parameters.
type ChunkingConfig struct {
	// MaxChunkSize is the maximum chunk size in bytes
	MaxChunkSize int `mapstructure:"max_chunk_size" validate:"gt=0"`

	// OverlapSize is the context overlap between consecutive chunks, in bytes
	OverlapSize int `mapstructure:"overlap_size" validate:"gte=0,ltfield=MaxChunkSize"`

	// Strategy selects the boundary detection strategy
	Strategy string `mapstructure:"strategy"`

	// PreserveMetadata controls whether source attribution is recorded
	PreserveMetadata bool `mapstructure:"preserve_metadata"`
}

// SecurityConfig restricts filesystem access.
type SecurityConfig struct {
	// BaseDir confines all paths to this directory when set
	BaseDir string `mapstructure:"base_dir"`

	// AllowHidden permits dot-files and dot-directories
	AllowHidden bool `mapstructure:"allow_hidden"`

	// FollowSymlinks permits symlinked paths
	FollowSymlinks bool `mapstructure:"follow_symlinks"`

	// MaxDepth limits directory nesting below BaseDir (0 = unlimited)
	MaxDepth int `mapstructure:"max_depth" validate:"gte=0"`

	// DenyPatterns lists glob patterns that are always rejected
	DenyPatterns []string `mapstructure:"deny_patterns"`
}

// IngestConfig tunes the ingestion worker pool.
type IngestConfig struct {
	// Workers is the number of concurrent file readers (0 = NumCPU)
	Workers int `mapstructure:"workers" validate:"gte=0"`

	// BatchSize is the number of files committed per transaction
	BatchSize int `mapstructure:"batch_size" validate:"gte=0"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use FILESEG_ prefix and underscores
	// Example: FILESEG_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("FILESEG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so AutomaticEnv values survive Unmarshal even when
	// the key is absent from the config file.
	for _, key := range []string{
		"logging.level", "logging.format",
		"storage.path",
		"io.small_file_threshold", "io.medium_file_threshold", "io.stream_chunk_size",
		"chunking.max_chunk_size", "chunking.overlap_size", "chunking.strategy",
		"security.base_dir", "security.allow_hidden", "security.follow_symlinks", "security.max_depth", "security.deny_patterns",
		"ingest.workers", "ingest.batch_size",
	} {
		v.SetDefault(key, nil)
	}
	v.SetDefault("chunking.preserve_metadata", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fileseg")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "fileseg")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// Thresholds converts the IO section to the threshold type used by readers.
func (c *Config) Thresholds() types.Thresholds {
	return types.Thresholds{
		SmallFile:   c.IO.SmallFileThreshold,
		MediumFile:  c.IO.MediumFileThreshold,
		StreamChunk: c.IO.StreamChunkSize,
	}
}

// ChunkingDefaults converts the chunking section to the engine config type.
func (c *Config) ChunkingDefaults() types.ChunkingConfig {
	return types.ChunkingConfig{
		MaxChunkSize:     c.Chunking.MaxChunkSize,
		OverlapSize:      c.Chunking.OverlapSize,
		Strategy:         types.ChunkStrategy(c.Chunking.Strategy),
		PreserveMetadata: c.Chunking.PreserveMetadata,
		Format:           types.FormatPlainText,
	}
}

// SecurityPolicy converts the security section to an enforcement config.
func (c *Config) SecurityPolicy() *security.Config {
	policy := security.NewConfig().
		AllowHiddenFiles(c.Security.AllowHidden).
		WithFollowSymlinks(c.Security.FollowSymlinks).
		WithMaxDepth(c.Security.MaxDepth)
	if c.Security.BaseDir != "" {
		policy = policy.WithBaseDir(c.Security.BaseDir)
	}
	if c.Security.DenyPatterns != nil {
		policy.DenyPatterns = c.Security.DenyPatterns
	}
	return policy
}
