package chunker

import "unicode/utf8"

// charLen returns the length of s in characters. Every size in Config is
// measured this way, never in bytes.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

// runeOffsets returns the byte offset of every character in text followed
// by len(text), so offs[k] is where character k starts and offs[charLen]
// is the end of the text.
func runeOffsets(text string) []int {
	offs := make([]int, 0, len(text)+1)
	for i := range text {
		offs = append(offs, i)
	}
	return append(offs, len(text))
}

// charOffset returns the byte offset of character k in text, or len(text)
// when k is past the end.
func charOffset(text string, k int) int {
	for i := range text {
		if k == 0 {
			return i
		}
		k--
	}
	return len(text)
}
