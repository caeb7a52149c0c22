package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Format identifies how a document's bytes are turned into text
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// FormatFromPath picks a format from the file extension. Anything that is
// not a PDF is read as text.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatText
}

// LoadFile reads a document from disk and returns its text
func LoadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Load(content, FormatFromPath(path))
}

// Load converts raw document bytes to text in NFC form
func Load(content []byte, format Format) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyDocument
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(content)
	case FormatText:
		text, err = extractText(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	return norm.NFC.String(text), nil
}

// extractText accepts UTF-8 text and rejects binary content
func extractText(content []byte) (string, error) {
	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return "", fmt.Errorf("%w: content is not UTF-8 text", ErrUnsupportedFormat)
	}
	return string(content), nil
}

// extractPDF pulls plain text page by page. Pages are separated by a blank
// line so page breaks become paragraph breaks for the chunker. Pages whose
// text cannot be read are skipped.
func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("%w: no extractable text in pdf", ErrEmptyDocument)
	}
	return text.String(), nil
}
