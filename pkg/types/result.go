package types

// Stats summarizes a chunk sequence for tuning and diagnostics
type Stats struct {
	Count       int     `json:"total_chunks"`
	AvgLength   float64 `json:"avg_length"`
	MinLength   int     `json:"min_length"`
	MaxLength   int     `json:"max_length"`
	TotalChars  int     `json:"total_characters"`
	TotalTokens int     `json:"total_tokens,omitempty"`
}

// IsEmpty reports whether the stats describe an empty sequence
func (s Stats) IsEmpty() bool {
	return s.Count == 0
}

// Document is one unit of work for batch chunking
type Document struct {
	ID     string // Caller-assigned identifier, defaults to Source
	Source string // Path the text was loaded from, empty for inline text
	Text   string
}

// Validate checks that the document carries something to chunk
func (d *Document) Validate() error {
	if d.Source == "" && d.Text == "" {
		return ErrMissingSource
	}
	return nil
}

// DocumentResult is the outcome of chunking one document
type DocumentResult struct {
	ID       string
	Source   string
	Strategy Strategy
	Chunks   []string
	Stats    Stats
	Err      error
}
