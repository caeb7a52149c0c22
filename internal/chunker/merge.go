package chunker

// MergeSmall folds chunks shorter than minSize characters into their
// neighbours in a single forward pass. A short chunk absorbs its successors,
// joined by a blank line, until it reaches minSize; it does not stop after
// the first successor, so two short chunks in a row cannot leave a short
// survivor. A short chunk left at the end is appended to the previous merged
// chunk, or kept when it is the only one.
func MergeSmall(chunks []string, minSize int) []string {
	if len(chunks) == 0 {
		return chunks
	}

	merged := make([]string, 0, len(chunks))
	i := 0

	for i < len(chunks) {
		current := chunks[i]
		i++

		for charLen(current) < minSize && i < len(chunks) {
			current += "\n\n" + chunks[i]
			i++
		}

		if charLen(current) < minSize && len(merged) > 0 {
			merged[len(merged)-1] += "\n\n" + current
			continue
		}
		merged = append(merged, current)
	}

	return merged
}
