package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docchunk/internal/batch"
	"github.com/dshills/docchunk/internal/cache"
	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/internal/logger"
	"github.com/dshills/docchunk/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeInvalidConfig = -32001 // Chunk size parameters fail validation
	ErrorCodeEmptyBatch    = -32002 // No files given to chunk_files
)

// maxReportedErrors caps per-file error messages in chunk_files responses
const maxReportedErrors = 5

// handleChunkDocument handles the chunk_document tool invocation
func (s *Server) handleChunkDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	strategy := chunker.ParseStrategy(getStringDefault(args, "strategy", string(s.config.Strategy)))
	includeStats := getBoolDefault(args, "include_stats", true)

	c, err := s.chunkerFor(args)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidConfig, "invalid chunk size parameters", map[string]interface{}{
			"error": err.Error(),
		})
	}

	described := c.Chunks(text, strategy)
	chunks := make([]string, 0, len(described))
	metadata := make([]types.ChunkInfo, 0, len(described))
	for _, ch := range described {
		chunks = append(chunks, ch.Content)
		metadata = append(metadata, ch.Info())
	}
	s.log.Debug("chunked document", "strategy", strategy, "chars", utf8.RuneCountInString(text), "chunks", len(chunks))

	response := map[string]interface{}{
		"strategy": strategy,
		"count":    len(chunks),
		"chunks":   chunks,
		"metadata": metadata,
	}
	if includeStats {
		response["stats"] = c.Inner().Analyze(chunks)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// chunkerFor returns the server chunker, or a cached chunker built from the
// server config with any size parameters in args applied on top.
func (s *Server) chunkerFor(args map[string]interface{}) (*cache.Chunker, error) {
	base := s.chunker.Inner().Config()
	cfg := base

	cfg.MinChunkSize = getIntDefault(args, "min_chunk_size", cfg.MinChunkSize)
	cfg.MaxChunkSize = getIntDefault(args, "max_chunk_size", cfg.MaxChunkSize)
	cfg.OverlapSize = getIntDefault(args, "overlap_size", cfg.OverlapSize)
	cfg.TargetSize = getIntDefault(args, "target_size", cfg.TargetSize)
	cfg.Tolerance = getFloatDefault(args, "tolerance", cfg.Tolerance)
	cfg.WindowSize = getIntDefault(args, "window_size", cfg.WindowSize)
	cfg.WindowOverlap = getIntDefault(args, "window_overlap", cfg.WindowOverlap)

	if cfg == base {
		return s.chunker, nil
	}

	c, err := chunker.New(cfg, chunker.WithTokenCounter(s.tokens))
	if err != nil {
		return nil, err
	}
	// Cache keys include the config, so overrides can share the server cache
	return cache.NewChunker(c, s.cache), nil
}

// handleChunkFiles handles the chunk_files tool invocation
func (s *Server) handleChunkFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	paths, err := getStringSlice(args, "paths")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "paths parameter is required", map[string]interface{}{
			"param":  "paths",
			"reason": err.Error(),
		})
	}
	if len(paths) == 0 {
		return nil, newMCPError(ErrorCodeEmptyBatch, "paths must contain at least one file", map[string]interface{}{
			"param": "paths",
		})
	}
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
				"param":  "paths",
				"value":  p,
				"reason": ErrPathNotAbsolute.Error(),
			})
		}
	}

	workers := getIntDefault(args, "workers", s.config.Batch.Workers)
	if workers < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "workers must be non-negative", map[string]interface{}{
			"param": "workers",
			"value": workers,
		})
	}

	strategy := chunker.ParseStrategy(getStringDefault(args, "strategy", string(s.config.Strategy)))

	ctx = logger.ContextWithLogger(ctx, s.log)
	results, stats, err := s.runner.Run(ctx, batch.DocumentsFromPaths(paths), &batch.Config{
		Workers:  workers,
		Strategy: strategy,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.log.Info("chunked files", "files", stats.Documents, "failed", stats.Failed,
		"chunks", stats.ChunksCreated, "duration", stats.Duration)

	files := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		entry := map[string]interface{}{
			"source": res.Source,
		}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
		} else {
			entry["count"] = len(res.Chunks)
			entry["chunks"] = nonNil(res.Chunks)
			entry["stats"] = res.Stats
		}
		files = append(files, entry)
	}

	response := map[string]interface{}{
		"strategy":        strategy,
		"files_processed": stats.Succeeded,
		"files_failed":    stats.Failed,
		"chunks_created":  stats.ChunksCreated,
		"duration_ms":     stats.Duration.Milliseconds(),
		"files":           files,
	}

	if len(stats.ErrorMessages) > 0 {
		errorCount := len(stats.ErrorMessages)
		if errorCount > maxReportedErrors {
			response["errors"] = stats.ErrorMessages[:maxReportedErrors]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleAnalyzeChunks handles the analyze_chunks tool invocation
func (s *Server) handleAnalyzeChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	chunks, err := getStringSlice(args, "chunks")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "chunks parameter is required", map[string]interface{}{
			"param":  "chunks",
			"reason": err.Error(),
		})
	}

	stats := s.chunker.Inner().Analyze(chunks)
	return mcp.NewToolResultText(formatJSON(stats)), nil
}

// handleGetConfig handles the get_config tool invocation
func (s *Server) handleGetConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"server":     ServerName,
		"version":    ServerVersion,
		"strategy":   s.config.Strategy,
		"strategies": chunker.Strategies(),
		"chunker":    s.chunker.Inner().Config(),
		"batch":      s.config.Batch,
		"cache":      s.config.Cache,
	}
	if s.cache != nil {
		hits, misses := s.chunker.Stats()
		response["cache_stats"] = map[string]interface{}{
			"entries": s.cache.Size(),
			"hits":    hits,
			"misses":  misses,
		}
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a response value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// nonNil keeps empty chunk lists encoding as [] rather than null
func nonNil(chunks []string) []string {
	if chunks == nil {
		return []string{}
	}
	return chunks
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	switch val := args[key].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a required array-of-strings parameter
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	switch val := args[key].(type) {
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d", ErrNotStringArray, i)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, ErrMissingParam
	default:
		return nil, ErrNotStringArray
	}
}

// Validation helpers

var (
	ErrMissingParam    = errors.New("parameter is missing")
	ErrNotStringArray  = errors.New("parameter must be an array of strings")
	ErrPathNotAbsolute = errors.New("path must be absolute")
)
