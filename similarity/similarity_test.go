package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	vec1 := []float64{1, 0, 0}
	vec2 := []float64{0, 1, 0}
	vec3 := []float64{1, 0, 0}

	t.Run("Orthogonal", func(t *testing.T) {
		sim, err := Cosine(vec1, vec2)
		require.NoError(t, err)
		assert.Equal(t, 0.0, sim)
	})

	t.Run("Identical", func(t *testing.T) {
		sim, err := Cosine(vec1, vec3)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("Opposite", func(t *testing.T) {
		sim, err := Cosine([]float32{1, 2}, []float32{-1, -2})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, sim, 1e-6)
	})

	t.Run("MagnitudeIndependent", func(t *testing.T) {
		a, err := Cosine([]float64{1, 2, 3}, []float64{4, 5, 6})
		require.NoError(t, err)
		b, err := Cosine([]float64{10, 20, 30}, []float64{0.4, 0.5, 0.6})
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Cosine([]float64{}, []float64{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = Cosine(nil, []float64{1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("DifferentLength", func(t *testing.T) {
		_, err := Cosine(vec1, []float64{1, 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("NonFinite", func(t *testing.T) {
		_, err := Cosine([]float64{1, math.NaN()}, []float64{1, 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = Cosine([]float32{1, 1}, []float32{float32(math.Inf(1)), 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ZeroMagnitude", func(t *testing.T) {
		_, err := Cosine([]float64{0, 0}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrDegenerateInput)
		_, err = Cosine([]float64{0, 0}, []float64{0, 0})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})
}

func TestCosineProperties(t *testing.T) {
	vectors := [][]float32{
		{0.1, 0.2, 0.3},
		{-0.5, 0.25, 0.9},
		{3, -1, 2},
		{0.0001, 0.0002, -0.0003},
		{1e6, 2e6, 3e6},
	}

	for i, v := range vectors {
		self, err := Cosine(v, v)
		require.NoError(t, err, "vector %d", i)
		assert.InDelta(t, 1.0, self, 1e-6, "vector %d", i)
		assert.LessOrEqual(t, self, 1.0, "vector %d", i)

		for j, w := range vectors {
			ab, err := Cosine(v, w)
			require.NoError(t, err, "pair %d/%d", i, j)
			ba, err := Cosine(w, v)
			require.NoError(t, err, "pair %d/%d", j, i)
			assert.Equal(t, ab, ba, "pair %d/%d", i, j)
			assert.GreaterOrEqual(t, ab, -1.0, "pair %d/%d", i, j)
			assert.LessOrEqual(t, ab, 1.0, "pair %d/%d", i, j)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []float64
		score float64
		label Label
	}{
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0, LabelDifferent},
		{"identical", []float64{1, 1}, []float64{1, 1}, 1, LabelNearlyIdentical},
		{"diagonal", []float64{1, 0}, []float64{1, 1}, math.Sqrt2 / 2, LabelVerySimilar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.score, res.Score, 1e-9)
			assert.Equal(t, tt.label, res.Label)
		})
	}

	_, err := Score([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		score float64
		want  Label
	}{
		{1.0, LabelNearlyIdentical},
		{0.95, LabelNearlyIdentical},
		{0.9, LabelNearlyIdentical},
		{0.89999, LabelVerySimilar},
		{0.7, LabelVerySimilar},
		{0.69999, LabelModerate},
		{0.5, LabelModerate},
		{0.3, LabelSlight},
		{0.29999, LabelDifferent},
		{0.0, LabelDifferent},
		{-0.5, LabelDifferent},
		{math.Inf(1), LabelNearlyIdentical},
		{math.Inf(-1), LabelDifferent},
		{math.NaN(), LabelDifferent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Interpret(tt.score), "Interpret(%v)", tt.score)
	}
}
