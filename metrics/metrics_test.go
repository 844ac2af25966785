package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.ObserveEmbedding("static/hash-384", nil)
	c.ObserveEmbedding("static/hash-384", nil)
	c.ObserveEmbedding("static/hash-384", errors.New("boom"))
	c.ObserveCache(true)
	c.ObserveCache(false)
	c.ObserveComparison(0.95, "Nearly identical meaning")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.embeddings.WithLabelValues("static/hash-384", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.embeddings.WithLabelValues("static/hash-384", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.comparisons.WithLabelValues("Nearly identical meaning")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.scores))
}

func TestCollectorReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.ObserveCache(true)
	second.ObserveCache(true)
	assert.Equal(t, 2.0, testutil.ToFloat64(second.cache.WithLabelValues("hit")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveEmbedding("p", nil)
		c.ObserveCache(true)
		c.ObserveComparison(1, "x")
	})
}
