package types

import "errors"

// Domain errors for type validation
var (
	ErrMissingSource = errors.New("document source or text is required")
)
