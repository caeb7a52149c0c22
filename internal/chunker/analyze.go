package chunker

import "github.com/dshills/docchunk/pkg/types"

// TokenCounter counts model tokens in a piece of text
type TokenCounter interface {
	Count(text string) int
}

// Analyze computes size statistics for a chunk sequence. Lengths are in
// characters. An empty sequence yields zero Stats.
func Analyze(chunks []string) types.Stats {
	if len(chunks) == 0 {
		return types.Stats{}
	}

	stats := types.Stats{
		Count:     len(chunks),
		MinLength: charLen(chunks[0]),
		MaxLength: charLen(chunks[0]),
	}

	for _, c := range chunks {
		n := charLen(c)
		stats.TotalChars += n
		if n < stats.MinLength {
			stats.MinLength = n
		}
		if n > stats.MaxLength {
			stats.MaxLength = n
		}
	}

	stats.AvgLength = float64(stats.TotalChars) / float64(stats.Count)
	return stats
}

// AnalyzeWithTokens is Analyze plus the total token count of all chunks.
// A nil counter leaves TotalTokens at zero.
func AnalyzeWithTokens(chunks []string, counter TokenCounter) types.Stats {
	stats := Analyze(chunks)
	if counter == nil {
		return stats
	}
	for _, c := range chunks {
		stats.TotalTokens += counter.Count(c)
	}
	return stats
}
