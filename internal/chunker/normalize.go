package chunker

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankLineRun    = regexp.MustCompile(`\n{3,}`)
	numericLine     = regexp.MustCompile(`^\d+$`)
	pageLine        = regexp.MustCompile(`(?i)^page\s+\d+`)
)

// Normalize cleans raw document text extracted from PDFs, OCR or office
// formats. Line endings become LF, runs of spaces and tabs collapse to one
// space, standalone page numbers and "Page N" lines are dropped and blank
// line runs collapse to a single blank line. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = horizontalSpace.ReplaceAllString(line, " ")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, "")
			continue
		}
		if isPageArtifact(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	text = strings.Join(kept, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// isPageArtifact reports whether a trimmed line is a page number or a
// "Page N" header/footer.
func isPageArtifact(line string) bool {
	return numericLine.MatchString(line) || pageLine.MatchString(line)
}
