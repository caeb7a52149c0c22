package chunker

import (
	"regexp"
	"strings"
)

// sentenceEnd matches a run of terminal punctuation followed by whitespace
// or the end of the text. Decimal points such as "3.14" do not match.
var sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// unit is a sentence together with the punctuation that terminated it
type unit struct {
	text  string
	punct byte // terminal punctuation that ended the unit, 0 if none
}

// SplitSentences splits text on runs of '.', '!' or '?' followed by
// whitespace or end of text. Units are trimmed and never empty. Every unit
// except the last keeps the first punctuation mark of the run that ended it.
func SplitSentences(text string) []string {
	return unitTexts(sentenceUnits(text))
}

// SplitStructural splits text into paragraphs on blank lines, falling back
// to single lines and then to sentences when no newline is present.
func SplitStructural(text string) []string {
	switch {
	case strings.Contains(text, "\n\n"):
		return splitOn(text, "\n\n")
	case strings.Contains(text, "\n"):
		return splitOn(text, "\n")
	default:
		return SplitSentences(text)
	}
}

// sentenceUnits splits text into sentence units, taking the terminating
// punctuation of each unit directly from the match position.
func sentenceUnits(text string) []unit {
	var units []unit
	start := 0

	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		if u, ok := newUnit(text, start, m[0]); ok {
			u.punct = text[m[0]]
			units = append(units, u)
		}
		start = m[1]
	}

	if start < len(text) {
		if u, ok := newUnit(text, start, len(text)); ok {
			units = append(units, u)
		}
	}

	return units
}

// unitTexts renders units as strings, restoring punctuation on all but the
// last unit.
func unitTexts(units []unit) []string {
	if len(units) == 0 {
		return nil
	}

	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.text
		if i < len(units)-1 && u.punct != 0 {
			out[i] += string(u.punct)
		}
	}
	return out
}

// newUnit trims text[start:end]. ok is false when the range is blank.
func newUnit(text string, start, end int) (unit, bool) {
	trimmed := strings.TrimSpace(text[start:end])
	if trimmed == "" {
		return unit{}, false
	}
	return unit{text: trimmed}, true
}

// splitOn splits text on sep, trimming parts and dropping empty ones
func splitOn(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
