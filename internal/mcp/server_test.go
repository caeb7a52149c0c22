package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/internal/config"
)

const policyText = "Coverage begins on the effective date. Claims must be filed within thirty days. " +
	"The insurer may request supporting documents. Payment is made after approval. "

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(config.Default(), nil)
	require.NoError(t, err)
	return s
}

func callTool(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) {
	t.Helper()
	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr), "expected MCPError, got %v", err)
	assert.Equal(t, code, mcpErr.Code)
}

func TestServer_Initialization(t *testing.T) {
	t.Run("server has all required components", func(t *testing.T) {
		s := newTestServer(t)
		assert.NotNil(t, s.mcp)
		assert.NotNil(t, s.tokens)
		assert.NotNil(t, s.cache)
		assert.NotNil(t, s.chunker)
		assert.NotNil(t, s.runner)
	})

	t.Run("cache can be disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Enabled = false
		s, err := NewServer(cfg, nil)
		require.NoError(t, err)
		assert.Nil(t, s.cache)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		cfg := config.Default()
		cfg.Chunker.MinChunkSize = 0
		_, err := NewServer(cfg, nil)
		assert.ErrorIs(t, err, chunker.ErrInvalidMinChunkSize)
	})
}

func TestHandleChunkDocument(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	text := strings.Repeat(policyText, 20)

	t.Run("defaults to balanced with stats", func(t *testing.T) {
		result, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": text}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		want := chunker.Default().Chunk(text, "balanced")

		assert.Equal(t, "balanced", out["strategy"])
		assert.EqualValues(t, len(want), out["count"])
		assert.Len(t, out["chunks"], len(want))

		stats, ok := out["stats"].(map[string]interface{})
		require.True(t, ok)
		assert.EqualValues(t, len(want), stats["total_chunks"])
		assert.Greater(t, stats["total_tokens"], float64(0))
	})

	t.Run("size overrides apply", func(t *testing.T) {
		result, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{
			"text":           text,
			"strategy":       "sliding-window",
			"window_size":    float64(300),
			"window_overlap": float64(50),
			"include_stats":  false,
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		cfg := chunker.DefaultConfig()
		cfg.WindowSize = 300
		cfg.WindowOverlap = 50
		want, err := chunker.ChunkDocument(text, "sliding_window", cfg)
		require.NoError(t, err)

		assert.Equal(t, "sliding_window", out["strategy"])
		assert.EqualValues(t, len(want), out["count"])
		assert.NotContains(t, out, "stats")
	})

	t.Run("unknown strategy falls back to balanced", func(t *testing.T) {
		result, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": text, "strategy": "fancy"}))
		require.NoError(t, err)
		assert.Equal(t, "balanced", decodeResult(t, result)["strategy"])
	})

	t.Run("metadata describes each chunk", func(t *testing.T) {
		cyrillic := strings.Repeat("Страховка покрывает ущерб от воды. ", 40)
		result, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": cyrillic}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		chunks, ok := out["chunks"].([]interface{})
		require.True(t, ok)
		metadata, ok := out["metadata"].([]interface{})
		require.True(t, ok)
		require.Len(t, metadata, len(chunks))

		total := 0
		for i, m := range metadata {
			info, ok := m.(map[string]interface{})
			require.True(t, ok)
			content := chunks[i].(string)
			total += utf8.RuneCountInString(content)

			assert.EqualValues(t, i, info["index"])
			assert.EqualValues(t, utf8.RuneCountInString(content), info["char_count"])
			assert.Greater(t, info["token_count"], float64(0))
			assert.Len(t, info["hash"], 64)
		}

		// Stats lengths are characters too
		stats, ok := out["stats"].(map[string]interface{})
		require.True(t, ok)
		assert.EqualValues(t, total, stats["total_characters"])
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		result, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": "   "}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.EqualValues(t, 0, out["count"])
		assert.Equal(t, []interface{}{}, out["chunks"])
		assert.Equal(t, []interface{}{}, out["metadata"])
	})

	t.Run("missing text", func(t *testing.T) {
		_, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("invalid sizes", func(t *testing.T) {
		_, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{
			"text":           text,
			"min_chunk_size": float64(900),
		}))
		requireMCPError(t, err, ErrorCodeInvalidConfig)
	})

	t.Run("non-map arguments", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = "text"
		_, err := s.handleChunkDocument(ctx, req)
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleChunkFiles(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	dir := t.TempDir()
	good := filepath.Join(dir, "policy.txt")
	require.NoError(t, os.WriteFile(good, []byte(strings.Repeat(policyText, 15)), 0644))
	missing := filepath.Join(dir, "missing.txt")

	t.Run("chunks files and reports failures", func(t *testing.T) {
		result, err := s.handleChunkFiles(ctx, callTool(map[string]interface{}{
			"paths":    []interface{}{good, missing},
			"strategy": "semantic",
			"workers":  float64(2),
		}))
		require.NoError(t, err)

		out := decodeResult(t, result)
		assert.Equal(t, "semantic", out["strategy"])
		assert.EqualValues(t, 1, out["files_processed"])
		assert.EqualValues(t, 1, out["files_failed"])
		assert.Len(t, out["errors"], 1)

		files, ok := out["files"].([]interface{})
		require.True(t, ok)
		require.Len(t, files, 2)

		first := files[0].(map[string]interface{})
		assert.Equal(t, good, first["source"])
		assert.Greater(t, first["count"], float64(0))

		second := files[1].(map[string]interface{})
		assert.Equal(t, missing, second["source"])
		assert.NotEmpty(t, second["error"])
	})

	t.Run("relative path rejected", func(t *testing.T) {
		_, err := s.handleChunkFiles(ctx, callTool(map[string]interface{}{"paths": []interface{}{"policy.txt"}}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("empty paths", func(t *testing.T) {
		_, err := s.handleChunkFiles(ctx, callTool(map[string]interface{}{"paths": []interface{}{}}))
		requireMCPError(t, err, ErrorCodeEmptyBatch)
	})

	t.Run("paths must be strings", func(t *testing.T) {
		_, err := s.handleChunkFiles(ctx, callTool(map[string]interface{}{"paths": []interface{}{good, 3.0}}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleAnalyzeChunks(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleAnalyzeChunks(ctx, callTool(map[string]interface{}{
		"chunks": []interface{}{"abcd", "abcdefgh"},
	}))
	require.NoError(t, err)

	out := decodeResult(t, result)
	assert.EqualValues(t, 2, out["total_chunks"])
	assert.EqualValues(t, 6, out["avg_length"])
	assert.EqualValues(t, 4, out["min_length"])
	assert.EqualValues(t, 8, out["max_length"])

	result, err = s.handleAnalyzeChunks(ctx, callTool(map[string]interface{}{"chunks": []interface{}{}}))
	require.NoError(t, err)
	assert.EqualValues(t, 0, decodeResult(t, result)["total_chunks"])

	_, err = s.handleAnalyzeChunks(ctx, callTool(map[string]interface{}{}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestHandleGetConfig(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": policyText}))
	require.NoError(t, err)
	_, err = s.handleChunkDocument(ctx, callTool(map[string]interface{}{"text": policyText}))
	require.NoError(t, err)

	result, err := s.handleGetConfig(ctx, callTool(map[string]interface{}{}))
	require.NoError(t, err)

	out := decodeResult(t, result)
	assert.Equal(t, ServerName, out["server"])
	assert.Equal(t, "balanced", out["strategy"])
	assert.Len(t, out["strategies"], 3)

	cfg, ok := out["chunker"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, chunker.DefaultMaxChunkSize, cfg["max_chunk_size"])

	cacheStats, ok := out["cache_stats"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, cacheStats["hits"])
	assert.EqualValues(t, 1, cacheStats["misses"])
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(t)

	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.serve(ctx, in, io.Discard)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after context cancellation")
	}
}
