package chunker

import (
	"strings"
)

// snapFraction is the share of a window, measured from its start, after
// which a period or space may be used as the cut point.
const snapFraction = 0.8

// span is a half-open byte range [start, end) of a window
type span struct {
	start int
	end   int
}

// chunkSlidingWindow slides a fixed window across the text with newlines
// flattened to spaces. Windows that do not reach the end of the text are
// snapped back to a period or space in their last 20%. Fragments of
// MinWindowChunk characters or fewer are dropped.
func chunkSlidingWindow(text string, cfg Config) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if charLen(text) <= cfg.WindowSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	for _, s := range windowSpans(text, cfg.WindowSize, cfg.WindowOverlap) {
		chunk := strings.TrimSpace(text[s.start:s.end])
		if charLen(chunk) > MinWindowChunk {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// windowSpans computes the byte range of every window. Window size and
// overlap are in characters. One span is produced per iteration; the next
// window starts overlap characters before the raw end of the previous one,
// so start advances by size-overlap characters each time.
func windowSpans(text string, size, overlap int) []span {
	offs := runeOffsets(text)
	n := len(offs) - 1

	var spans []span
	start := 0
	for start < n {
		end := start + size
		if end >= n {
			spans = append(spans, span{start: offs[start], end: len(text)})
			break
		}

		spans = append(spans, span{start: offs[start], end: snapEnd(text, offs[start], offs[end])})

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return spans
}

// snapEnd moves a window end back to the last period (inclusive) or the last
// space when either falls in the final 20% of the window's characters.
func snapEnd(text string, start, end int) int {
	window := text[start:end]
	threshold := float64(charLen(window)) * snapFraction

	if p := strings.LastIndexByte(window, '.'); p >= 0 && float64(charLen(window[:p])) > threshold {
		return start + p + 1
	}
	if sp := strings.LastIndexByte(window, ' '); sp >= 0 && float64(charLen(window[:sp])) > threshold {
		return start + sp
	}
	return end
}
