package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter mirrors a subset of the registry onto standard
// Prometheus counters and histograms for scraping by external tooling.
// The hand-rolled ring-buffer percentiles in Registry remain the source
// of truth for the exact /metrics JSON contract (spec §6); this is a
// supplementary exposition, not a replacement — Prometheus histogram
// buckets are approximate and cannot reproduce the exact nearest-rank
// percentiles the JSON contract promises.
type PrometheusExporter struct {
	searchesTotal   *prometheus.CounterVec
	resultCount     prometheus.Histogram
	stageLatency    *prometheus.HistogramVec
	cacheHitsTotal  *prometheus.CounterVec
	llmFallbackRate prometheus.Counter
}

// NewPrometheusExporter registers the pipeline's Prometheus series
// against the default registry.
func NewPrometheusExporter() *PrometheusExporter {
	return &PrometheusExporter{
		searchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partsearch",
			Subsystem: "pipeline",
			Name:      "searches_total",
			Help:      "Total search requests by outcome",
		}, []string{"outcome"}),

		resultCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "partsearch",
			Subsystem: "pipeline",
			Name:      "result_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 200},
		}),

		stageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "partsearch",
			Subsystem: "pipeline",
			Name:      "stage_latency_ms",
			Help:      "Per-stage latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 3000},
		}, []string{"stage"}),

		cacheHitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partsearch",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache lookups by tier and outcome",
		}, []string{"tier", "outcome"}),

		llmFallbackRate: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "partsearch",
			Subsystem: "understanding",
			Name:      "llm_fallback_total",
			Help:      "Number of requests where LLM enhancement fell back to token parsing",
		}),
	}
}

// ObserveSearch records a completed search's outcome and result count.
func (p *PrometheusExporter) ObserveSearch(success bool, resultCount int) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	p.searchesTotal.WithLabelValues(outcome).Inc()
	p.resultCount.Observe(float64(resultCount))
}

// ObserveStageLatency records one stage's duration in milliseconds.
func (p *PrometheusExporter) ObserveStageLatency(stage Stage, ms float64) {
	p.stageLatency.WithLabelValues(string(stage)).Observe(ms)
}

// ObserveCacheLookup records an L1/L2 hit or miss.
func (p *PrometheusExporter) ObserveCacheLookup(tier string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	p.cacheHitsTotal.WithLabelValues(tier, outcome).Inc()
}

// ObserveLLMFallback increments the fallback counter.
func (p *PrometheusExporter) ObserveLLMFallback() {
	p.llmFallbackRate.Inc()
}
