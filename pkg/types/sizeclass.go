package types

import "fmt"

// FileSizeClass classifies a file by byte length
type FileSizeClass string

const (
	SizeSmall  FileSizeClass = "small"
	SizeMedium FileSizeClass = "medium"
	SizeLarge  FileSizeClass = "large"
)

// Default threshold values. Thresholds are injectable via the Thresholds
// struct; these are only the starting point.
const (
	// DefaultSmallFileThreshold is the upper bound (exclusive) for small files
	DefaultSmallFileThreshold int64 = 1 << 20 // 1 MiB
	// DefaultMediumFileThreshold is the upper bound (exclusive) for medium files
	DefaultMediumFileThreshold int64 = 16 << 20 // 16 MiB
	// DefaultStreamChunkSize is the window size for streaming reads
	DefaultStreamChunkSize int64 = 8 << 20 // 8 MiB
)

// Thresholds holds the size boundaries used to classify files and pick an I/O
// strategy. Classification is half-open: [0, SmallFile) is small,
// [SmallFile, MediumFile) is medium, [MediumFile, inf) is large.
type Thresholds struct {
	SmallFile   int64 `mapstructure:"small_file_threshold"`
	MediumFile  int64 `mapstructure:"medium_file_threshold"`
	StreamChunk int64 `mapstructure:"stream_chunk_size"`
}

// DefaultThresholds returns the standard 1 MiB / 16 MiB / 8 MiB boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallFile:   DefaultSmallFileThreshold,
		MediumFile:  DefaultMediumFileThreshold,
		StreamChunk: DefaultStreamChunkSize,
	}
}

// Validate checks that the thresholds describe a usable ordering.
func (t Thresholds) Validate() error {
	if t.SmallFile <= 0 {
		return fmt.Errorf("small file threshold must be positive, got %d", t.SmallFile)
	}
	if t.MediumFile <= t.SmallFile {
		return fmt.Errorf("medium file threshold %d must exceed small file threshold %d",
			t.MediumFile, t.SmallFile)
	}
	if t.StreamChunk <= 0 {
		return fmt.Errorf("stream chunk size must be positive, got %d", t.StreamChunk)
	}
	return nil
}

// Classify returns the size class for a byte length.
func (t Thresholds) Classify(size int64) FileSizeClass {
	switch {
	case size < t.SmallFile:
		return SizeSmall
	case size < t.MediumFile:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// SizeClassFromSize classifies a byte length using the default thresholds.
func SizeClassFromSize(size int64) FileSizeClass {
	return DefaultThresholds().Classify(size)
}
