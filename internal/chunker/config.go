package chunker

import (
	"math"
	"strings"

	"github.com/dshills/docchunk/pkg/types"
)

const (
	// DefaultMinChunkSize is the balanced strategy's size floor in characters
	DefaultMinChunkSize = 250
	// DefaultMaxChunkSize is the balanced strategy's soft size ceiling
	DefaultMaxChunkSize = 800
	// DefaultOverlapSize is the balanced strategy's overlap window
	DefaultOverlapSize = 100

	// DefaultTargetSize is the semantic strategy's target chunk size
	DefaultTargetSize = 500
	// DefaultTolerance lets semantic chunks grow to TargetSize*(1+Tolerance)
	DefaultTolerance = 0.3

	// DefaultWindowSize is the sliding window width in characters
	DefaultWindowSize = 600
	// DefaultWindowOverlap is the character overlap between windows
	DefaultWindowOverlap = 150

	// MinWindowChunk drops sliding window fragments at or below this length
	MinWindowChunk = 50
)

// Config holds size parameters for all three strategies.
// All sizes are character counts over the normalized text.
type Config struct {
	// Balanced
	MinChunkSize int `toml:"min_chunk_size" json:"min_chunk_size"`
	MaxChunkSize int `toml:"max_chunk_size" json:"max_chunk_size"`
	OverlapSize  int `toml:"overlap_size" json:"overlap_size"`

	// Semantic
	TargetSize int     `toml:"target_size" json:"target_size"`
	Tolerance  float64 `toml:"tolerance" json:"tolerance"`

	// Sliding window
	WindowSize    int `toml:"window_size" json:"window_size"`
	WindowOverlap int `toml:"window_overlap" json:"window_overlap"`
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		MinChunkSize:  DefaultMinChunkSize,
		MaxChunkSize:  DefaultMaxChunkSize,
		OverlapSize:   DefaultOverlapSize,
		TargetSize:    DefaultTargetSize,
		Tolerance:     DefaultTolerance,
		WindowSize:    DefaultWindowSize,
		WindowOverlap: DefaultWindowOverlap,
	}
}

// Validate checks if the chunk configuration is valid.
func (c Config) Validate() error {
	if c.MinChunkSize <= 0 {
		return ErrInvalidMinChunkSize
	}
	if c.MaxChunkSize <= 0 {
		return ErrInvalidMaxChunkSize
	}
	if c.MinChunkSize > c.MaxChunkSize {
		return ErrMinExceedsMax
	}
	if c.OverlapSize < 0 {
		return ErrInvalidOverlap
	}
	if c.OverlapSize >= c.MaxChunkSize {
		return ErrOverlapTooLarge
	}

	if c.TargetSize <= 0 {
		return ErrInvalidTargetSize
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return ErrInvalidTolerance
	}

	if c.WindowSize <= 0 {
		return ErrInvalidWindowSize
	}
	if c.WindowOverlap < 0 {
		return ErrInvalidOverlap
	}
	if c.WindowOverlap >= c.WindowSize {
		return ErrWindowOverlapTooLarge
	}

	return nil
}

// ParseStrategy maps a strategy name to a Strategy. Matching is
// case-insensitive and unknown or empty names fall back to balanced.
func ParseStrategy(name string) types.Strategy {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)

	switch types.Strategy(n) {
	case types.StrategySemantic:
		return types.StrategySemantic
	case types.StrategySlidingWindow:
		return types.StrategySlidingWindow
	default:
		return types.StrategyBalanced
	}
}

// Strategies lists the supported strategy names in display order
func Strategies() []types.Strategy {
	return []types.Strategy{
		types.StrategyBalanced,
		types.StrategySemantic,
		types.StrategySlidingWindow,
	}
}
