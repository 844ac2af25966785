package similarity

import (
	"fmt"
	"math"
)

// Dot computes the dot product of two equal-length vectors, accumulating in float64.
func Dot[T Float](a, b []T) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// Norm computes the Euclidean (L2) norm of v.
func Norm[T Float](v []T) float64 {
	return math.Sqrt(Dot(v, v))
}

// Cosine computes dot(a, b) / (‖a‖·‖b‖).
//
// Both vectors must be non-empty, of equal length and contain only finite
// values, otherwise ErrInvalidInput is returned. If either vector has zero
// magnitude ErrDegenerateInput is returned. The result is clamped to [-1, 1].
func Cosine[T Float](a, b []T) (float64, error) {
	if err := validate(a, b); err != nil {
		return 0, err
	}

	normA, normB := Norm(a), Norm(b)
	if normA == 0 || normB == 0 {
		return 0, ErrDegenerateInput
	}

	cos := Dot(a, b) / (normA * normB)
	return math.Max(-1, math.Min(1, cos)), nil
}

// Score computes the cosine similarity of a and b together with its interpretation.
func Score[T Float](a, b []T) (Result, error) {
	score, err := Cosine(a, b)
	if err != nil {
		return Result{}, err
	}
	return Result{Score: score, Label: Interpret(score)}, nil
}

func validate[T Float](a, b []T) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("%w: embeddings must be non-empty (got %d and %d)", ErrInvalidInput, len(a), len(b))
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: embeddings must have the same dimension (got %d and %d)", ErrInvalidInput, len(a), len(b))
	}
	for i := range a {
		if !finite(a[i]) {
			return fmt.Errorf("%w: first embedding has non-finite value at index %d", ErrInvalidInput, i)
		}
		if !finite(b[i]) {
			return fmt.Errorf("%w: second embedding has non-finite value at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

func finite[T Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
