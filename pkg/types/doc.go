// Package types provides shared type definitions for docchunk.
//
// These types are used across the chunking engine, the batch runner, the
// MCP server and the CLI.
//
// # Core Types
//
// Chunk is a bounded-size text segment with metadata for embedding pipelines:
//
//	chunk := types.NewChunk(0, "First sentence. Second sentence.", types.StrategyBalanced)
//	info := chunk.Info() // index, hex hash, character and token counts
//
// Stats summarizes a chunk sequence (count, min/avg/max length, totals):
//
//	stats := chunker.Analyze(chunks)
//	fmt.Printf("%d chunks, avg %.1f chars\n", stats.Count, stats.AvgLength)
//
// Document and DocumentResult carry inputs and outputs of batch chunking:
//
//	docs := []types.Document{{Source: "/data/report.pdf"}}
//	results, stats, err := runner.Run(ctx, docs, nil)
//
// # Validation
//
// Document.Validate returns ErrMissingSource when a document has neither a
// source path nor inline text.
package types
