package chunker

import (
	"regexp"
	"strings"
)

// sentenceStart matches terminal punctuation, whitespace and a capital
// letter, i.e. the start of a new sentence inside an overlap window.
var sentenceStart = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// chunkBalanced greedily packs sentences into chunks between MinChunkSize
// and MaxChunkSize characters. Each sealed chunk seeds the next one with an
// overlap taken from its tail. The minimum size wins over the maximum: a
// chunk still under the floor keeps growing past the ceiling.
func chunkBalanced(text string, cfg Config) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var (
		chunks  []string
		current string
	)

	for _, sentence := range sentences {
		potential := sentence
		if current != "" {
			potential = current + " " + sentence
		}

		if charLen(potential) <= cfg.MaxChunkSize {
			current = potential
			continue
		}

		if current == "" || charLen(current) < cfg.MinChunkSize {
			current = potential
			continue
		}

		chunks = append(chunks, current)
		if overlap := sentenceOverlap(current, cfg.OverlapSize); overlap != "" {
			current = overlap + " " + sentence
		} else {
			current = sentence
		}
	}

	// The trailing buffer is kept whatever its size; MergeSmall folds it
	// into its predecessor when it is under the floor.
	if tail := strings.TrimSpace(current); tail != "" {
		chunks = append(chunks, tail)
	}

	return MergeSmall(chunks, cfg.MinChunkSize)
}

// sentenceOverlap returns the trailing overlap of a sealed chunk. Within the
// last size characters it prefers to start at a sentence boundary; if there
// is none the raw tail is returned.
func sentenceOverlap(text string, size int) string {
	if size <= 0 {
		return ""
	}
	n := charLen(text)
	if n <= size {
		return strings.TrimSpace(text)
	}

	tail := text[charOffset(text, n-size):]

	if loc := sentenceStart.FindStringIndex(tail); loc != nil {
		// loc[1]-1 is the capital letter opening the next sentence
		return strings.TrimSpace(tail[loc[1]-1:])
	}
	return strings.TrimSpace(tail)
}
