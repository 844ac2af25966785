// Package similarity scores embedding vectors with cosine similarity and maps
// scores to human-readable interpretation labels.
package similarity

import "errors"

var (
	// ErrInvalidInput indicates empty, mismatched or non-finite vectors.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateInput indicates a zero-magnitude vector, for which the angle is undefined.
	ErrDegenerateInput = errors.New("degenerate input: zero-magnitude vector")
)

// Float is the set of element types a vector may have.
type Float interface {
	~float32 | ~float64
}

// Result is the outcome of comparing two vectors.
type Result struct {
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}
