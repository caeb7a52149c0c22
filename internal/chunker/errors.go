package chunker

import "errors"

// Configuration errors
var (
	ErrInvalidMinChunkSize   = errors.New("min chunk size must be positive")
	ErrInvalidMaxChunkSize   = errors.New("max chunk size must be positive")
	ErrMinExceedsMax         = errors.New("min chunk size cannot exceed max chunk size")
	ErrInvalidOverlap        = errors.New("overlap must be non-negative")
	ErrOverlapTooLarge       = errors.New("overlap must be less than max chunk size")
	ErrInvalidTargetSize     = errors.New("target size must be positive")
	ErrInvalidTolerance      = errors.New("tolerance must be non-negative")
	ErrInvalidWindowSize     = errors.New("window size must be positive")
	ErrWindowOverlapTooLarge = errors.New("window overlap must be less than window size")
)
