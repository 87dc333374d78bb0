// Package prometheus instruments leanscrap services with Prometheus
// collectors registered on a private registry.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scrape outcomes used as label values.
const (
	OutcomeOK           = "ok"
	OutcomeArticleError = "article_error"
	OutcomeError        = "error"
)

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	registry *prometheus.Registry

	scrapesTotal   *prometheus.CounterVec
	reasonsTotal   *prometheus.CounterVec
	scrapeDuration prometheus.Histogram
	fetchesTotal   *prometheus.CounterVec
	fetchBytes     prometheus.Counter
}

// NewMetrics creates a registry with the leanscrap collectors and the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		scrapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leanscrap_scrapes_total",
				Help: "Total number of article scrapes, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		reasonsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leanscrap_scrape_failure_reasons_total",
				Help: "Total number of article failure reasons reported, labeled by reason.",
			},
			[]string{"reason"},
		),
		scrapeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "leanscrap_scrape_duration_seconds",
				Help:    "Histogram of article scrape latencies.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leanscrap_fetches_total",
				Help: "Total number of page fetches, labeled by status class.",
			},
			[]string{"status"},
		),
		fetchBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "leanscrap_fetch_bytes_total",
				Help: "Total number of page bytes fetched.",
			},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
