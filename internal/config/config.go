// Package config loads docchunk settings: defaults, then an optional TOML
// file, then DOCCHUNK_* environment variables (env wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/pkg/types"
)

// DefaultPath is read by Load when no path is given. A missing default file
// is not an error.
const DefaultPath = "docchunk.toml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "DOCCHUNK_"

var (
	ErrInvalidWorkers   = errors.New("batch workers must be non-negative")
	ErrInvalidCacheSize = errors.New("cache size must be non-negative")
	ErrInvalidLogLevel  = errors.New("log level must be debug, info, warn or error")
)

// Config is the complete docchunk configuration shared by the CLI and the
// MCP server. Strategy is the default used when a request names none.
type Config struct {
	Strategy types.Strategy `toml:"strategy" json:"strategy"`
	Chunker  chunker.Config `toml:"chunker" json:"chunker"`
	Batch    BatchConfig    `toml:"batch" json:"batch"`
	Cache    CacheConfig    `toml:"cache" json:"cache"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// BatchConfig controls multi-document runs
type BatchConfig struct {
	// Workers is the number of documents chunked concurrently. Zero means
	// one per CPU.
	Workers int `toml:"workers" json:"workers"`
}

// CacheConfig controls the LRU cache of chunk results. Size is the maximum
// number of cached documents; zero uses the cache package default.
type CacheConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	Size    int  `toml:"size" json:"size"`
}

// LogConfig selects the log level and output format
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	JSON  bool   `toml:"json" json:"json"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Strategy: types.StrategyBalanced,
		Chunker:  chunker.DefaultConfig(),
		Cache:    CacheConfig{Enabled: true, Size: 1024},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads config: defaults -> TOML file -> env vars, then validates.
// An explicitly named file must exist; the default file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	cfg.Strategy = chunker.ParseStrategy(string(cfg.Strategy))

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DOCCHUNK_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPrefix + "STRATEGY"); v != "" {
		c.Strategy = types.Strategy(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"MIN_CHUNK_SIZE", &c.Chunker.MinChunkSize},
		{"MAX_CHUNK_SIZE", &c.Chunker.MaxChunkSize},
		{"OVERLAP_SIZE", &c.Chunker.OverlapSize},
		{"TARGET_SIZE", &c.Chunker.TargetSize},
		{"WINDOW_SIZE", &c.Chunker.WindowSize},
		{"WINDOW_OVERLAP", &c.Chunker.WindowOverlap},
		{"WORKERS", &c.Batch.Workers},
		{"CACHE_SIZE", &c.Cache.Size},
	}
	for _, e := range ints {
		v := os.Getenv(EnvPrefix + e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, e.name, v, err)
		}
		*e.dst = n
	}

	if v := os.Getenv(EnvPrefix + "TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sTOLERANCE %q: %w", EnvPrefix, v, err)
		}
		c.Chunker.Tolerance = f
	}

	if v := os.Getenv(EnvPrefix + "CACHE_ENABLED"); v != "" {
		c.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_JSON"); v != "" {
		c.Log.JSON = parseBool(v)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables already set are not overridden, so the shell wins
// over the file. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Validate checks every section. Chunker errors are wrapped so callers can
// match the chunker sentinels with errors.Is.
func (c *Config) Validate() error {
	if err := c.Chunker.Validate(); err != nil {
		return fmt.Errorf("invalid chunk config: %w", err)
	}
	if c.Batch.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.Cache.Size < 0 {
		return ErrInvalidCacheSize
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return nil
}
