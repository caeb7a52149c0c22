// Package chunker splits raw document text into bounded-size, overlapping
// chunks for embedding and retrieval.
//
// The engine is a pure, synchronous transform. Text flows strictly forward
// through five stages:
//
//	raw text -> Normalize -> units -> assembled chunks -> MergeSmall
//
// # Basic Usage
//
//	chunks, err := chunker.ChunkDocument(text, types.StrategyBalanced, chunker.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err) // only configuration errors are possible
//	}
//
//	for i, chunk := range chunks {
//	    fmt.Printf("chunk %d: %d chars\n", i, utf8.RuneCountInString(chunk))
//	}
//
// # Strategies
//
// Three assembly strategies are available:
//   - balanced (default): greedy sentence packing between MinChunkSize (250)
//     and MaxChunkSize (800) characters, with a sentence-aligned overlap of up
//     to OverlapSize (100) characters, followed by a small-chunk merge
//   - semantic: paragraphs, else lines, else sentences, grouped up to
//     TargetSize*(1+Tolerance) (650) characters, no overlap
//   - sliding_window: fixed WindowSize (600) windows overlapping by
//     WindowOverlap (150), snapped to a period or space in the last 20%
//
// Unknown strategy names passed to ParseStrategy fall back to balanced.
//
// # Normalization
//
// Normalize prepares noisy PDF/OCR text: CRLF becomes LF, space and tab runs
// collapse, standalone page numbers and "Page N" lines are removed and blank
// line runs collapse to one blank line. Every strategy chunks normalized text
// and all sizes are measured on it in characters (runes), not bytes.
//
// # Configuration
//
// Config.Validate rejects configurations that would loop or produce
// nonsensical chunks (min > max, overlap >= window size, and so on).
// New and ChunkDocument call it before doing any work.
//
// # Diagnostics
//
// Analyze reports count, average, min and max length and total characters
// of a chunk sequence:
//
//	stats := chunker.Analyze(chunks)
//	fmt.Printf("%d chunks, avg %.0f chars\n", stats.Count, stats.AvgLength)
package chunker
