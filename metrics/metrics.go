// Package metrics exposes Prometheus instrumentation for embedding and comparison calls.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "semanticsim"

// Outcome labels for embedding requests.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector holds the registered metric vectors.
type Collector struct {
	embeddings  *prometheus.CounterVec
	cache       *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	scores      prometheus.Histogram
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered (e.g. by a second comparer) are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		embeddings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embeddings_total",
			Help:      "Embedding requests sent to the provider, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups, by result (hit or miss).",
		}, []string{"result"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Completed phrase comparisons, by interpretation label.",
		}, []string{"label"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_score",
			Help:      "Distribution of cosine similarity scores.",
			Buckets:   []float64{-0.5, 0, 0.3, 0.5, 0.7, 0.9, 1},
		}),
	}

	if reg == nil {
		return c, nil
	}

	var err error
	c.embeddings, err = register(reg, c.embeddings)
	if err != nil {
		return nil, err
	}
	c.cache, err = register(reg, c.cache)
	if err != nil {
		return nil, err
	}
	c.comparisons, err = register(reg, c.comparisons)
	if err != nil {
		return nil, err
	}
	c.scores, err = register(reg, c.scores)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, err
	}
	return col, nil
}

// ObserveEmbedding counts a provider embedding call.
func (c *Collector) ObserveEmbedding(provider string, err error) {
	if c == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	c.embeddings.WithLabelValues(provider, outcome).Inc()
}

// ObserveCache counts an embedding cache lookup.
func (c *Collector) ObserveCache(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cache.WithLabelValues(result).Inc()
}

// ObserveComparison records a completed comparison.
func (c *Collector) ObserveComparison(score float64, label string) {
	if c == nil {
		return
	}
	c.comparisons.WithLabelValues(label).Inc()
	c.scores.Observe(score)
}
