// Package mcp implements the Model Context Protocol server for docchunk.
//
// The server exposes the chunking engine to AI assistants over stdio using
// github.com/mark3labs/mcp-go. Stdout carries protocol frames only; all logs
// go to stderr.
//
// # Tools
//
// chunk_document splits raw text into chunks:
//
//	{
//	  "text": "Coverage begins on the effective date. ...",
//	  "strategy": "balanced",            // balanced | semantic | sliding_window
//	  "min_chunk_size": 250,             // optional size overrides
//	  "max_chunk_size": 800,
//	  "include_stats": true
//	}
//
// The response holds the resolved strategy, the chunk count, the chunks in
// document order and, unless disabled, length and token statistics. Size
// overrides are validated before any chunking; a bad combination returns
// ErrorCodeInvalidConfig.
//
// chunk_files loads .txt, .md and .pdf files by absolute path and chunks them
// concurrently. Each file gets its own entry; a file that cannot be loaded
// carries an error string instead of chunks and does not fail the call.
//
// analyze_chunks computes statistics for chunks produced elsewhere.
//
// get_config returns the effective configuration plus cache hit counts.
//
// # Errors
//
// Parameter problems are returned as *MCPError using JSON-RPC codes:
//
//	-32602  invalid or missing parameters
//	-32603  internal failure (for example a cancelled batch)
//	-32001  chunk size parameters fail validation
//	-32002  chunk_files called without paths
//
// # Caching
//
// Chunking is deterministic, so results are memoized in an LRU keyed by
// text, strategy and configuration. The cache is shared between tools and
// lives only as long as the process.
package mcp
