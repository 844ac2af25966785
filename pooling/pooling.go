// Package pooling reduces several vectors to one embedding and normalizes embeddings.
package pooling

import (
	"fmt"
	"math"
	"slices"

	"github.com/botirk38/semanticsim/similarity"
	"github.com/botirk38/semanticsim/types"
)

// Pool reduces vectors according to strategy. PoolingNone requires exactly one vector.
func Pool(strategy types.Pooling, vectors [][]float32) ([]float32, error) {
	switch strategy {
	case types.PoolingMean, "":
		return Mean(vectors)
	case types.PoolingMax:
		return Max(vectors)
	case types.PoolingNone:
		if len(vectors) != 1 {
			return nil, fmt.Errorf("%w: pooling %q needs exactly one vector, got %d", similarity.ErrInvalidInput, strategy, len(vectors))
		}
		return slices.Clone(vectors[0]), nil
	default:
		return nil, fmt.Errorf("%w: unsupported pooling %q", similarity.ErrInvalidInput, strategy)
	}
}

// Mean returns the element-wise average of vectors.
func Mean(vectors [][]float32) ([]float32, error) {
	dim, err := dimension(vectors)
	if err != nil {
		return nil, err
	}

	sum := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			sum[i] += float64(x)
		}
	}

	out := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sum {
		out[i] = float32(s / n)
	}
	return out, nil
}

// Max returns the element-wise maximum of vectors.
func Max(vectors [][]float32) ([]float32, error) {
	if _, err := dimension(vectors); err != nil {
		return nil, err
	}

	out := slices.Clone(vectors[0])
	for _, v := range vectors[1:] {
		for i, x := range v {
			if x > out[i] {
				out[i] = x
			}
		}
	}
	return out, nil
}

// Normalize returns an L2-normalized copy of v.
// Returns false if v is empty or has zero L2 norm.
func Normalize(v []float32) ([]float32, bool) {
	if len(v) == 0 {
		return nil, false
	}
	norm := similarity.Norm(v)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, false
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out, true
}

// Apply normalizes v when opts ask for it. A zero vector is returned unchanged
// so that scoring reports it as degenerate.
func Apply(v []float32, opts types.EmbedOptions) []float32 {
	if !opts.Normalize {
		return v
	}
	if n, ok := Normalize(v); ok {
		return n
	}
	return v
}

func dimension(vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, fmt.Errorf("%w: nothing to pool", similarity.ErrInvalidInput)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: empty vector", similarity.ErrInvalidInput)
	}
	for i, v := range vectors[1:] {
		if len(v) != dim {
			return 0, fmt.Errorf("%w: vector %d has dimension %d, want %d", similarity.ErrInvalidInput, i+1, len(v), dim)
		}
	}
	return dim, nil
}
