// Package cache memoizes chunking results in memory.
//
// Chunking is deterministic for a given text, strategy and configuration, so
// results are cached under a SHA-256 key of all three. The cache lives in the
// serving process only; nothing is written to disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/pkg/types"
)

// DefaultSize is the number of chunk sequences kept when no size is given
const DefaultSize = 1024

// Cache provides in-memory LRU caching of chunk sequences by content hash
type Cache struct {
	cache *lru.Cache[string, []string]
}

// New creates a new chunk cache with LRU eviction
func New(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = DefaultSize
	}
	c, err := lru.New[string, []string](maxLen)
	if err != nil {
		c, _ = lru.New[string, []string](DefaultSize)
	}
	return &Cache{cache: c}
}

// Get returns a copy of the cached chunks so callers cannot mutate the entry
func (c *Cache) Get(key string) ([]string, bool) {
	chunks, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	out := make([]string, len(chunks))
	copy(out, chunks)
	return out, true
}

// Set stores chunks under key, evicting the least recently used entry
func (c *Cache) Set(key string, chunks []string) {
	stored := make([]string, len(chunks))
	copy(stored, chunks)
	c.cache.Add(key, stored)
}

// Size returns the current number of entries
func (c *Cache) Size() int {
	return c.cache.Len()
}

// Clear empties the cache
func (c *Cache) Clear() {
	c.cache.Purge()
}

// Key computes the cache key for a text chunked with strategy and cfg
func Key(text string, strategy types.Strategy, cfg chunker.Config) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d|%g|%d|%d|",
		strategy,
		cfg.MinChunkSize, cfg.MaxChunkSize, cfg.OverlapSize,
		cfg.TargetSize, cfg.Tolerance,
		cfg.WindowSize, cfg.WindowOverlap)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Chunker wraps a chunker.Chunker with a result cache
type Chunker struct {
	chunker *chunker.Chunker
	cache   *Cache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewChunker creates a caching chunker. A nil cache disables caching.
func NewChunker(c *chunker.Chunker, cache *Cache) *Chunker {
	return &Chunker{chunker: c, cache: cache}
}

// Chunk returns cached chunks for text when present, otherwise chunks it
// and stores the result.
func (c *Chunker) Chunk(text string, strategy types.Strategy) []string {
	strategy = chunker.ParseStrategy(string(strategy))
	if c.cache == nil {
		return c.chunker.Chunk(text, strategy)
	}

	key := Key(text, strategy, c.chunker.Config())
	if chunks, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return chunks
	}

	c.misses.Add(1)
	chunks := c.chunker.Chunk(text, strategy)
	c.cache.Set(key, chunks)
	return chunks
}

// Chunks is Chunk with per-chunk metadata. Only chunk texts are cached;
// metadata is recomputed on every call.
func (c *Chunker) Chunks(text string, strategy types.Strategy) []*types.Chunk {
	return c.chunker.Describe(c.Chunk(text, strategy), strategy)
}

// Inner returns the wrapped chunker
func (c *Chunker) Inner() *chunker.Chunker {
	return c.chunker
}

// Stats reports cache hits and misses since creation
func (c *Chunker) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
