// Package metrics provides Prometheus metrics for tree loading and search
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	// Tree load metrics
	TreeLoadsTotal    *prometheus.CounterVec
	TreeLoadDuration  prometheus.Histogram
	LoadFailuresTotal *prometheus.CounterVec

	// Snapshot of the last successful load
	DocumentsLoaded prometheus.Gauge
	ItemsLoaded     prometheus.Gauge

	// Query metrics
	SearchQueriesTotal prometheus.Counter
	SearchResultsTotal prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.TreeLoadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqtree_tree_loads_total",
			Help: "Total number of tree loads",
		},
		[]string{"status"},
	)

	m.TreeLoadDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reqtree_tree_load_duration_seconds",
			Help:    "Duration of tree loads in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	m.LoadFailuresTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqtree_load_failures_total",
			Help: "Total number of failed tree loads by error kind",
		},
		[]string{"kind"},
	)

	m.DocumentsLoaded = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "reqtree_documents_loaded",
			Help: "Number of documents in the last loaded tree",
		},
	)

	m.ItemsLoaded = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "reqtree_items_loaded",
			Help: "Number of items in the last loaded tree",
		},
	)

	m.SearchQueriesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "reqtree_search_queries_total",
			Help: "Total number of search queries",
		},
	)

	m.SearchResultsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "reqtree_search_results_total",
			Help: "Total number of search results returned",
		},
	)

	return m
}

// RecordLoad records a successful tree load
func (m *Metrics) RecordLoad(duration time.Duration, documents int, items int) {
	if m == nil {
		return
	}
	m.TreeLoadsTotal.WithLabelValues("ok").Inc()
	m.TreeLoadDuration.Observe(duration.Seconds())
	m.DocumentsLoaded.Set(float64(documents))
	m.ItemsLoaded.Set(float64(items))
}

// RecordFailure records a failed tree load with the name of its error kind
func (m *Metrics) RecordFailure(duration time.Duration, kind string) {
	if m == nil {
		return
	}
	m.TreeLoadsTotal.WithLabelValues("error").Inc()
	m.TreeLoadDuration.Observe(duration.Seconds())
	m.LoadFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordSearch records a search query and the number of hits returned
func (m *Metrics) RecordSearch(results int) {
	if m == nil {
		return
	}
	m.SearchQueriesTotal.Inc()
	m.SearchResultsTotal.Add(float64(results))
}
