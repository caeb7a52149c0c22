// Package loader turns document files into plain text for the chunker.
//
// Plain text files are read as UTF-8. PDF files are extracted page by page
// with github.com/ledongthuc/pdf, pages joined by a blank line. Output is
// normalized to Unicode NFC so that visually identical text from different
// sources compares equal after chunking.
//
//	text, err := loader.LoadFile("/data/policy.pdf")
//	if err != nil {
//	    return err
//	}
//	chunks := c.Chunk(text, types.StrategyBalanced)
//
// Scanned PDFs without a text layer yield ErrEmptyDocument; OCR is the
// caller's concern.
package loader
