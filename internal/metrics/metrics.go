// Package metrics exports crawl observations as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aacrawler/internal/crawler"
)

const (
	// MetricsNamespace is the namespace for all crawler metrics.
	MetricsNamespace = "aacrawler"
)

// Metrics holds all Prometheus metrics for the crawler. It implements
// crawler.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	SearchesTotal           *prometheus.CounterVec
	SearchDurationSeconds   prometheus.Histogram
	DocumentsTotal          *prometheus.CounterVec
	DocumentDurationSeconds prometheus.Histogram

	// Crawl metrics
	CrawlsTotal          *prometheus.CounterVec
	CrawlDurationSeconds prometheus.Histogram
	ArticlesTotal        prometheus.Counter
	SkippedTotal         prometheus.Counter
}

var _ crawler.Recorder = (*Metrics)(nil)

// NewMetrics creates a registry with process and Go collectors and registers
// all crawler metrics on it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{registry: reg}

	m.initRequestMetrics(factory)
	m.initCrawlMetrics(factory)

	return m
}

func (m *Metrics) initRequestMetrics(factory promauto.Factory) {
	m.SearchesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "searches_total",
			Help:      "Total number of search calls by outcome",
		},
		[]string{"outcome"},
	)

	m.SearchDurationSeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	m.DocumentsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "documents_total",
			Help:      "Total number of document fetches by outcome",
		},
		[]string{"outcome"},
	)

	m.DocumentDurationSeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "document_duration_seconds",
			Help:      "Duration of document fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
}

func (m *Metrics) initCrawlMetrics(factory promauto.Factory) {
	m.CrawlsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "crawls_total",
			Help:      "Total number of crawl runs by status",
		},
		[]string{"status"},
	)

	m.CrawlDurationSeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "crawl_duration_seconds",
			Help:      "Duration of crawl runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // 0.25s to ~2min
		},
	)

	m.ArticlesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "articles_total",
			Help:      "Total number of articles produced",
		},
	)

	m.SkippedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "documents_skipped_total",
			Help:      "Total number of search results without a document",
		},
	)
}

// ObserveSearch records one search call.
func (m *Metrics) ObserveSearch(outcome string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDurationSeconds.Observe(duration.Seconds())
}

// ObserveDocument records one document fetch.
func (m *Metrics) ObserveDocument(outcome string, duration time.Duration) {
	m.DocumentsTotal.WithLabelValues(outcome).Inc()
	m.DocumentDurationSeconds.Observe(duration.Seconds())
}

// ObserveCrawl records a finished crawl run.
func (m *Metrics) ObserveCrawl(stats crawler.Stats, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	m.CrawlsTotal.WithLabelValues(status).Inc()
	m.CrawlDurationSeconds.Observe(stats.Duration.Seconds())
	m.ArticlesTotal.Add(float64(stats.Fetched))
	m.SkippedTotal.Add(float64(stats.Skipped))
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
