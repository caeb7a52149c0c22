package types

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// Strategy names the chunk-assembly algorithm that produced a chunk
type Strategy string

const (
	StrategyBalanced      Strategy = "balanced"
	StrategySemantic      Strategy = "semantic"
	StrategySlidingWindow Strategy = "sliding_window"
)

// Chunk is a bounded-size text segment ready for embedding and retrieval
type Chunk struct {
	// Position in the chunk sequence (0-based)
	Index int

	// Content
	Content     string
	ContentHash [32]byte // SHA-256 hash for deduplication
	CharCount   int
	TokenCount  int

	// Metadata
	Strategy Strategy
}

// NewChunk builds a chunk with its hash and character count computed
func NewChunk(index int, content string, strategy Strategy) *Chunk {
	c := &Chunk{
		Index:    index,
		Content:  content,
		Strategy: strategy,
	}
	c.CharCount = utf8.RuneCountInString(content)
	c.ComputeContentHash()
	return c
}

// ComputeContentHash computes the SHA-256 hash of the chunk content
func (c *Chunk) ComputeContentHash() {
	c.ContentHash = sha256.Sum256([]byte(c.Content))
}

// HashHex returns the content hash as a hex string
func (c *Chunk) HashHex() string {
	return hex.EncodeToString(c.ContentHash[:])
}

// ChunkInfo is the per-chunk metadata reported alongside chunk text
type ChunkInfo struct {
	Index      int    `json:"index"`
	Hash       string `json:"hash"`
	CharCount  int    `json:"char_count"`
	TokenCount int    `json:"token_count"`
}

// Info returns the chunk's metadata without its content
func (c *Chunk) Info() ChunkInfo {
	return ChunkInfo{
		Index:      c.Index,
		Hash:       c.HashHex(),
		CharCount:  c.CharCount,
		TokenCount: c.TokenCount,
	}
}
