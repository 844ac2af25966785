// Package static provides a deterministic, offline embedding provider.
//
// Texts found in the fixed vector table are returned verbatim; everything else
// is embedded by hashing lower-cased word tokens into a fixed number of signed
// buckets. Phrases sharing words therefore score higher than unrelated ones,
// which is enough for demos and tests without a model.
package static

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/botirk38/semanticsim/pooling"
	"github.com/botirk38/semanticsim/types"
)

// DefaultDimensions matches all-MiniLM-L6-v2.
const DefaultDimensions = 384

// StaticConfig configures the static provider.
type StaticConfig struct {
	// Dimensions of hashed embeddings. Ignored for texts in Vectors.
	Dimensions int
	// Vectors maps exact input texts to fixed embeddings.
	Vectors map[string][]float32
}

// StaticProvider embeds text without any model.
type StaticProvider struct {
	dims        int
	vectors     map[string][]float32
	initialized atomic.Bool
}

// NewStaticProvider creates a static provider.
func NewStaticProvider(config StaticConfig) *StaticProvider {
	dims := config.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &StaticProvider{
		dims:    dims,
		vectors: maps.Clone(config.Vectors),
	}
}

// Name returns the provider name and dimensionality.
func (p *StaticProvider) Name() string {
	return fmt.Sprintf("static/hash-%d", p.dims)
}

// Initialize marks the provider ready. It never fails.
func (p *StaticProvider) Initialize(ctx context.Context) error {
	p.initialized.Store(true)
	return nil
}

// Embed returns the fixed vector for text if one is configured, otherwise a hashed embedding.
func (p *StaticProvider) Embed(ctx context.Context, text string, opts types.EmbedOptions) (types.Embedding, error) {
	if !p.initialized.Load() {
		return nil, types.ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if v, ok := p.vectors[text]; ok {
		return pooling.Apply(slices.Clone(v), opts), nil
	}

	vec := make([]float32, p.dims)
	for _, token := range Tokenize(text) {
		h := xxhash.Sum64String(token)
		sign := float32(1)
		if h>>63 == 1 {
			sign = -1
		}
		vec[h%uint64(p.dims)] += sign
	}
	return pooling.Apply(vec, opts), nil
}

func (p *StaticProvider) Close() {}

// Tokenize lower-cases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
