// Package metrics exposes derivation counters and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/Klingon-tech/seedphrase/internal/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seedphrase"

// Results every derivation is counted under.
var results = []string{
	wallet.KindOK,
	wallet.KindInvalidWordCount,
	wallet.KindInvalidWord,
	wallet.KindInvalidPhrase,
	wallet.KindInternal,
}

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	derivations *prometheus.CounterVec
	duration    prometheus.Histogram
	validations *prometheus.CounterVec
}

// New creates and registers the collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivations_total",
			Help:      "Address derivations by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "derivation_seconds",
			Help:      "Time spent deriving an address, including PBKDF2.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Mnemonic validations by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.derivations,
		m.duration,
		m.validations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Export every result at zero so rate() works from the first scrape.
	for _, r := range results {
		m.derivations.WithLabelValues(r)
		m.validations.WithLabelValues(r)
	}
	return m
}

// ObserveDerivation counts one derivation with outcome err.
func (m *Metrics) ObserveDerivation(err error, took time.Duration) {
	m.derivations.WithLabelValues(wallet.KindOf(err)).Inc()
	m.duration.Observe(took.Seconds())
}

// ObserveValidation counts one validation with outcome err.
func (m *Metrics) ObserveValidation(err error) {
	m.validations.WithLabelValues(wallet.KindOf(err)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
