package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docchunk/internal/batch"
	"github.com/dshills/docchunk/internal/cache"
	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/internal/config"
	"github.com/dshills/docchunk/internal/logger"
	"github.com/dshills/docchunk/internal/tokens"
)

const (
	// ServerName is the MCP server name
	ServerName = "docchunk"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	config  config.Config
	log     *charmlog.Logger
	tokens  chunker.TokenCounter
	cache   *cache.Cache
	chunker *cache.Chunker
	runner  *batch.Runner
}

// NewServer creates a new MCP server instance. A nil logger discards output.
func NewServer(cfg config.Config, log *charmlog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	// Token counts fall back to the character estimate when the BPE tables
	// cannot be loaded.
	var counter chunker.TokenCounter
	if tc, err := tokens.New(); err != nil {
		log.Warn("tokenizer unavailable, estimating tokens", "err", err)
		counter = tokens.Estimator{}
	} else {
		counter = tc
	}

	base, err := chunker.New(cfg.Chunker, chunker.WithTokenCounter(counter))
	if err != nil {
		return nil, err
	}

	var results *cache.Cache
	if cfg.Cache.Enabled {
		results = cache.New(cfg.Cache.Size)
	}

	// The cached chunker is shared by single-document calls and the batch
	// runner so both see the same results.
	cached := cache.NewChunker(base, results)

	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		config:  cfg,
		log:     log,
		tokens:  counter,
		cache:   results,
		chunker: cached,
		runner:  batch.New(cached),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve runs the MCP server on stdin/stdout until ctx is cancelled or the
// input is closed. Cancellation is a clean shutdown and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving on stdio", "strategy", s.config.Strategy, "cache", s.cache != nil)
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.log.StandardLog())

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(chunkDocumentTool(), s.handleChunkDocument)
	s.mcp.AddTool(chunkFilesTool(), s.handleChunkFiles)
	s.mcp.AddTool(analyzeChunksTool(), s.handleAnalyzeChunks)
	s.mcp.AddTool(getConfigTool(), s.handleGetConfig)
	return nil
}
