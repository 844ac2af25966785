package chunker

import "errors"

var (
	// ErrInvalidChunkSize indicates chunk size is invalid (<=0)
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidOverlap indicates overlap value is invalid (<0)
	ErrInvalidOverlap = errors.New("overlap must be non-negative")

	// ErrOverlapTooLarge indicates overlap is >= chunk size
	ErrOverlapTooLarge = errors.New("overlap must be less than chunk size")

	// ErrInvalidMaxChunks indicates a negative chunk cap
	ErrInvalidMaxChunks = errors.New("max chunks must be non-negative")

	// ErrEmptyText indicates text to chunk is empty
	ErrEmptyText = errors.New("cannot chunk empty text")

	// ErrTokenizerFailed indicates tokenization failed
	ErrTokenizerFailed = errors.New("tokenization failed")
)
