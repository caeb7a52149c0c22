package chunker

import "strings"

// chunkSemantic groups structural units (paragraphs, else lines, else
// sentences) into chunks of at most TargetSize*(1+Tolerance) characters.
// Units are joined by a blank line. There is no overlap and no merge pass,
// so semantic chunks may be arbitrarily small.
func chunkSemantic(text string, cfg Config) []string {
	return groupBySize(SplitStructural(text), cfg.TargetSize, cfg.Tolerance)
}

// groupBySize accumulates units while the accumulation stays within
// target*(1+tolerance). A unit that would overflow seals the current chunk
// and starts the next one; a single oversized unit becomes its own chunk.
func groupBySize(units []string, target int, tolerance float64) []string {
	limit := float64(target) * (1 + tolerance)

	var (
		chunks  []string
		current string
	)

	for _, u := range units {
		potential := u
		if current != "" {
			potential = current + "\n\n" + u
		}

		if float64(charLen(potential)) <= limit {
			current = potential
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = u
	}

	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}
