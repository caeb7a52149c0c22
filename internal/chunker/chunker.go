package chunker

import (
	"fmt"

	"github.com/dshills/docchunk/pkg/types"
)

// Chunker splits document text into bounded, overlapping chunks.
// It holds only immutable configuration and is safe for concurrent use.
type Chunker struct {
	config Config
	tokens TokenCounter
}

// Option configures a Chunker
type Option func(*Chunker)

// WithTokenCounter sets the counter used to fill Chunk.TokenCount
func WithTokenCounter(tc TokenCounter) Option {
	return func(c *Chunker) {
		c.tokens = tc
	}
}

// New creates a Chunker after validating cfg
func New(cfg Config, opts ...Option) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}

	c := &Chunker{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default creates a Chunker with DefaultConfig
func Default() *Chunker {
	return &Chunker{config: DefaultConfig()}
}

// Config returns the chunker's configuration
func (c *Chunker) Config() Config {
	return c.config
}

// Chunk normalizes text once and splits it with the given strategy.
// Unknown strategies fall back to balanced. Empty text yields no chunks.
func (c *Chunker) Chunk(text string, strategy types.Strategy) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	switch ParseStrategy(string(strategy)) {
	case types.StrategySemantic:
		return chunkSemantic(normalized, c.config)
	case types.StrategySlidingWindow:
		return chunkSlidingWindow(normalized, c.config)
	default:
		return chunkBalanced(normalized, c.config)
	}
}

// Chunks is Chunk with per-chunk metadata: index, content hash, character
// count and, when a token counter is configured, token count.
func (c *Chunker) Chunks(text string, strategy types.Strategy) []*types.Chunk {
	return c.Describe(c.Chunk(text, strategy), strategy)
}

// Describe attaches metadata to chunk texts produced earlier by Chunk
func (c *Chunker) Describe(parts []string, strategy types.Strategy) []*types.Chunk {
	strategy = ParseStrategy(string(strategy))
	chunks := make([]*types.Chunk, 0, len(parts))
	for i, p := range parts {
		chunk := types.NewChunk(i, p, strategy)
		if c.tokens != nil {
			chunk.TokenCount = c.tokens.Count(p)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Analyze computes statistics for chunks, including token totals when a
// token counter is configured.
func (c *Chunker) Analyze(chunks []string) types.Stats {
	return AnalyzeWithTokens(chunks, c.tokens)
}

// ChunkDocument validates cfg and chunks text with the given strategy.
// It is the single entry point for callers that do not keep a Chunker.
func ChunkDocument(text string, strategy types.Strategy, cfg Config) ([]string, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Chunk(text, strategy), nil
}
