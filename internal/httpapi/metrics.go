package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"partsearch/internal/telemetry"
)

// MetricsHandler serves GET /metrics as JSON (spec §6) and wraps the
// Prometheus exposition format under a separate path for scraping.
type MetricsHandler struct {
	registry *telemetry.Registry
}

// NewMetricsHandler wires a MetricsHandler.
func NewMetricsHandler(registry *telemetry.Registry) *MetricsHandler {
	return &MetricsHandler{registry: registry}
}

// JSON handles GET /metrics.
func (h *MetricsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	snapshot := h.registry.Snapshot()
	writeJSON(w, http.StatusOK, snapshotView(snapshot))
}

func snapshotView(s telemetry.Snapshot) map[string]any {
	percentiles := make(map[string]map[string]float64, len(s.Percentiles))
	for stage, p := range s.Percentiles {
		percentiles[string(stage)] = map[string]float64{"p50": p.P50, "p95": p.P95, "p99": p.P99}
	}
	sampleSizes := make(map[string]int, len(s.SampleSizes))
	for stage, n := range s.SampleSizes {
		sampleSizes[string(stage)] = n
	}
	return map[string]any{
		"totalSearches":      s.TotalSearches,
		"successfulSearches": s.SuccessfulSearches,
		"failedSearches":     s.FailedSearches,
		"zeroResultSearches": s.ZeroResultSearches,
		"l1HitRate":          s.L1HitRate,
		"l2HitRate":          s.L2HitRate,
		"llmFallbackRate":    s.LLMFallbackRate,
		"purchases":          s.Purchases,
		"averageMRR":         s.AverageMRR,
		"averageResultCount": s.AverageResultCount,
		"clicksByPosition":   s.ClicksByPosition,
		"sampleSizes":        sampleSizes,
		"percentiles":        percentiles,
	}
}

// Prometheus exposes the supplementary Prometheus exposition format,
// mounted at a distinct path (e.g. /metrics/prometheus) since /metrics
// itself returns the JSON metrics snapshot.
func Prometheus() http.Handler {
	return promhttp.Handler()
}
