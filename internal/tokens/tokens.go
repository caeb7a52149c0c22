// Package tokens counts model tokens in chunk text.
//
// Counter uses tiktoken's cl100k_base encoding, the encoding of OpenAI's
// text-embedding-3 models, so chunk sizes can be checked against embedding
// model limits. Estimator is the cheap chars/4 heuristic.
package tokens

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiktoken-go/tokenizer"
)

// CharsPerToken is the heuristic used when no encoder is available
const CharsPerToken = 4

// Counter counts tokens with a tiktoken encoding
type Counter struct {
	codec tokenizer.Codec
}

// New creates a Counter using the cl100k_base encoding
func New() (*Counter, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Counter{codec: enc}, nil
}

// Count returns the number of tokens in text. Encoding failures fall back
// to the chars/4 estimate.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}

	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return Estimate(text)
	}
	return len(ids)
}

// Estimator counts tokens with the chars/4 heuristic
type Estimator struct{}

// Count implements the chunker token counter
func (Estimator) Count(text string) int {
	return Estimate(text)
}

// Estimate approximates the token count of text as chars/4, rounded up
func Estimate(text string) int {
	return (utf8.RuneCountInString(text) + CharsPerToken - 1) / CharsPerToken
}
