package telemetry

import (
	"sync"
	"sync/atomic"
)

// Stage identifies one pipeline stage for per-stage latency tracking.
type Stage string

const (
	StageUnderstanding Stage = "understanding"
	StageRetrieval     Stage = "retrieval"
	StageFiltering     Stage = "filtering"
	StageRanking       Stage = "ranking"
	StageExplanation   Stage = "explanation"
	StageTotal         Stage = "total"
)

var allStages = []Stage{
	StageUnderstanding, StageRetrieval, StageFiltering, StageRanking, StageExplanation, StageTotal,
}

// recentSearchesWindow bounds the recent-searches ring used for the
// quality gauges (spec §5: "recentSearches window (last 1 000)").
const recentSearchesWindow = 1000

// searchRecord is one entry in the recent-searches window, enough to
// recompute MRR and result-count gauges.
type searchRecord struct {
	resultCount     int
	clickedPosition int // 0 = no click observed yet
}

// Registry is the process-wide metrics registry (spec §4, §6). Pure
// counters use atomics; the latency rings, click-position histogram,
// and recent-searches window share one mutex since they're read and
// written together for the /metrics report.
type Registry struct {
	totalSearches      atomic.Int64
	successfulSearches atomic.Int64
	failedSearches     atomic.Int64
	zeroResultSearches atomic.Int64
	l1Hits             atomic.Int64
	l1Misses           atomic.Int64
	l2Hits             atomic.Int64
	l2Misses           atomic.Int64
	llmFallbacks       atomic.Int64
	llmCalls           atomic.Int64
	purchases          atomic.Int64

	mu                sync.RWMutex
	latency           map[Stage]*ring
	clicksByPosition  [20]int64
	recentSearches    []searchRecord
	recentSearchesIdx int
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	r := &Registry{
		latency:        make(map[Stage]*ring, len(allStages)),
		recentSearches: make([]searchRecord, 0, recentSearchesWindow),
	}
	for _, s := range allStages {
		r.latency[s] = newRing()
	}
	return r
}

// RecordSearch logs a completed search's outcome and latencies.
func (r *Registry) RecordSearch(success bool, resultCount int, stageLatenciesMs map[Stage]float64) {
	r.totalSearches.Add(1)
	if success {
		r.successfulSearches.Add(1)
	} else {
		r.failedSearches.Add(1)
	}
	if success && resultCount == 0 {
		r.zeroResultSearches.Add(1)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for stage, ms := range stageLatenciesMs {
		if ring, ok := r.latency[stage]; ok {
			ring.add(ms)
		}
	}
	r.pushRecentLocked(searchRecord{resultCount: resultCount})
}

func (r *Registry) pushRecentLocked(rec searchRecord) {
	if len(r.recentSearches) < recentSearchesWindow {
		r.recentSearches = append(r.recentSearches, rec)
		r.recentSearchesIdx = len(r.recentSearches) % recentSearchesWindow
		return
	}
	r.recentSearches[r.recentSearchesIdx] = rec
	r.recentSearchesIdx = (r.recentSearchesIdx + 1) % recentSearchesWindow
}

// RecordClick records a click at 1-based position for the most recent
// search (used for MRR and click-position gauges).
func (r *Registry) RecordClick(position int) {
	if position >= 1 && position <= len(r.clicksByPosition) {
		r.mu.Lock()
		r.clicksByPosition[position-1]++
		if n := len(r.recentSearches); n > 0 {
			idx := (r.recentSearchesIdx - 1 + recentSearchesWindow) % recentSearchesWindow
			if idx < n {
				r.recentSearches[idx].clickedPosition = position
			}
		}
		r.mu.Unlock()
	}
}

// RecordCacheLookup records an L1/L2 hit or miss.
func (r *Registry) RecordCacheLookup(tier string, hit bool) {
	switch {
	case tier == "l1" && hit:
		r.l1Hits.Add(1)
	case tier == "l1" && !hit:
		r.l1Misses.Add(1)
	case tier == "l2" && hit:
		r.l2Hits.Add(1)
	case tier == "l2" && !hit:
		r.l2Misses.Add(1)
	}
}

// RecordLLMCall records whether understanding fell back from LLM to
// token-only parsing.
func (r *Registry) RecordLLMCall(fellBack bool) {
	r.llmCalls.Add(1)
	if fellBack {
		r.llmFallbacks.Add(1)
	}
}

// RecordPurchase increments the purchase counter.
func (r *Registry) RecordPurchase() {
	r.purchases.Add(1)
}

// Percentiles returns p50/p95/p99 (in ms) for the given stage.
func (r *Registry) Percentiles(stage Stage) (p50, p95, p99 float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ring, ok := r.latency[stage]
	if !ok {
		return 0, 0, 0
	}
	return ring.percentile(50), ring.percentile(95), ring.percentile(99)
}

// MRR computes the mean reciprocal rank of the first click across the
// recent-searches window (spec GLOSSARY).
func (r *Registry) MRR() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.recentSearches) == 0 {
		return 0
	}
	var sum float64
	var n int
	for _, rec := range r.recentSearches {
		if rec.clickedPosition > 0 {
			sum += 1.0 / float64(rec.clickedPosition)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AverageResultCount averages result counts across the recent-searches
// window.
func (r *Registry) AverageResultCount() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.recentSearches) == 0 {
		return 0
	}
	var sum int
	for _, rec := range r.recentSearches {
		sum += rec.resultCount
	}
	return float64(sum) / float64(len(r.recentSearches))
}

// ClicksByPosition returns a copy of the 1..20 click-position histogram.
func (r *Registry) ClicksByPosition() [20]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clicksByPosition
}

// Snapshot is the flattened view exposed at GET /metrics (spec §6).
type Snapshot struct {
	TotalSearches      int64
	SuccessfulSearches int64
	FailedSearches     int64
	ZeroResultSearches int64
	L1HitRate          float64
	L2HitRate          float64
	LLMFallbackRate    float64
	Purchases          int64
	AverageMRR         float64
	AverageResultCount float64
	ClicksByPosition   [20]int64
	SampleSizes        map[Stage]int
	Percentiles        map[Stage]Percentile
}

// Percentile bundles p50/p95/p99 for one stage.
type Percentile struct {
	P50, P95, P99 float64
}

// Snapshot assembles the full metrics report.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	sampleSizes := make(map[Stage]int, len(allStages))
	percentiles := make(map[Stage]Percentile, len(allStages))
	for _, s := range allStages {
		ring := r.latency[s]
		sampleSizes[s] = ring.len()
		percentiles[s] = Percentile{ring.percentile(50), ring.percentile(95), ring.percentile(99)}
	}
	r.mu.RUnlock()

	l1Hits, l1Misses := r.l1Hits.Load(), r.l1Misses.Load()
	l2Hits, l2Misses := r.l2Hits.Load(), r.l2Misses.Load()
	llmCalls, llmFallbacks := r.llmCalls.Load(), r.llmFallbacks.Load()

	return Snapshot{
		TotalSearches:      r.totalSearches.Load(),
		SuccessfulSearches: r.successfulSearches.Load(),
		FailedSearches:     r.failedSearches.Load(),
		ZeroResultSearches: r.zeroResultSearches.Load(),
		L1HitRate:          rate(l1Hits, l1Hits+l1Misses),
		L2HitRate:          rate(l2Hits, l2Hits+l2Misses),
		LLMFallbackRate:    rate(llmFallbacks, llmCalls),
		Purchases:          r.purchases.Load(),
		AverageMRR:         r.MRR(),
		AverageResultCount: r.AverageResultCount(),
		ClicksByPosition:   r.ClicksByPosition(),
		SampleSizes:        sampleSizes,
		Percentiles:        percentiles,
	}
}

func rate(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
