// Package orchestrator wires the five pipeline stages behind capability
// interfaces, runs them in order for one request, and owns the
// cross-cutting concerns: hooks, full-response caching, pagination,
// and per-request metrics (spec §4.10).
package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"partsearch/internal/cache"
	"partsearch/internal/explanation"
	"partsearch/internal/filtering"
	"partsearch/internal/model"
	"partsearch/internal/ranking"
	"partsearch/internal/retrieval"
	"partsearch/internal/telemetry"
	"partsearch/internal/understanding"
)

// Config toggles individual stages and the full-response cache (spec
// §4.10, §6 closed configuration set).
type Config struct {
	UnderstandingEnabled bool
	RetrievalEnabled     bool
	FilteringEnabled     bool
	RankingEnabled       bool
	ExplanationEnabled   bool
	CachingEnabled       bool
}

// Orchestrator composes the five stages and the cross-cutting
// utilities into one request-handling entry point.
type Orchestrator struct {
	cfg           Config
	understanding understanding.Understander
	retrieval     retrieval.Retriever
	filtering     filtering.Filterer
	ranking       ranking.Ranker
	explanation   explanation.Explainer
	cache         *cache.TwoTier
	metrics       *telemetry.Registry
	listeners     listenerList
	log           *slog.Logger
}

// New wires an Orchestrator. Any stage interface left nil is replaced
// with that package's Noop implementation, so a disabled stage never
// requires the caller to hand-construct a passthrough (spec §4.10).
func New(cfg Config, u understanding.Understander, r retrieval.Retriever, f filtering.Filterer, rk ranking.Ranker, e explanation.Explainer, c *cache.TwoTier, m *telemetry.Registry, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if u == nil || !cfg.UnderstandingEnabled {
		u = understanding.Noop{}
	}
	if r == nil || !cfg.RetrievalEnabled {
		r = retrieval.Noop{}
	}
	if f == nil || !cfg.FilteringEnabled {
		f = filtering.Noop{}
	}
	if rk == nil || !cfg.RankingEnabled {
		rk = ranking.Noop{}
	}
	if e == nil || !cfg.ExplanationEnabled {
		e = explanation.Noop{}
	}
	if m == nil {
		m = telemetry.NewRegistry()
	}
	return &Orchestrator{cfg: cfg, understanding: u, retrieval: r, filtering: f, ranking: rk, explanation: e, cache: c, metrics: m, log: log}
}

// RegisterListener adds a hook observer (spec §9: an observer list,
// not nullable per-stage callback properties).
func (o *Orchestrator) RegisterListener(l Listener) {
	o.listeners.Register(l)
}

// Search runs the full pipeline for one request (spec §4.10).
func (o *Orchestrator) Search(ctx context.Context, rawQuery string, opts Options) model.Response {
	start := time.Now()
	requestID := NewRequestID()
	opts = opts.normalize()
	query := model.NewQuery(rawQuery)
	mctx := model.NewMetricsContext(requestID, start)

	o.listeners.Dispatch(HookBeforeSearch, HookPayload{RequestID: requestID, Query: query})

	if query.Empty() {
		resp := model.NewFailure(rawQuery, requestID, ErrCodeInvalidQuery, "query must not be empty")
		o.recordFailure(requestID, resp)
		return resp
	}

	entry := &telemetry.LogEntry{RequestID: requestID, Timestamp: start, RawQuery: rawQuery}

	// Stage 1: Understanding.
	mctx.StartStage(model.StageParse, time.Now())
	understandResult := o.understanding.Understand(ctx, query)
	mctx.EndStage(model.StageParse, time.Now())
	entry.ParseMethod = string(understandResult.Method)
	entry.ParseTimeMs = understandResult.DurationMs
	entry.ParseConfidence = understandResult.Intent.Confidence
	entry.ParsedIntent = understandResult.Intent

	o.listeners.Dispatch(HookAfterUnderstanding, HookPayload{RequestID: requestID, Query: query, Intent: understandResult.Intent})

	if !understandResult.Success {
		resp := model.NewFailure(rawQuery, requestID, ErrCodeInvalidQuery, understandResult.Error)
		o.recordFailure(requestID, resp)
		return resp
	}
	intent := understandResult.Intent

	// Full-response cache probe, after Intent is known (spec §4.10,
	// §4.9: search key folds in the intent subset and filters).
	searchKey := cache.SearchKey(intentCacheSubset(intent), opts.Filters, opts.Page, opts.Limit)
	if o.cfg.CachingEnabled && o.cache != nil {
		if raw, hit := o.cache.Get(ctx, cache.NamespaceSearch, searchKey); hit {
			var cached model.Response
			if err := json.Unmarshal(raw, &cached); err == nil {
				cached.Meta.CacheStatus = "cache"
				o.metrics.RecordCacheLookup("l1", true)
				return cached
			}
		}
		o.metrics.RecordCacheLookup("l1", false)
	}

	// Stage 2: Retrieval.
	mctx.StartStage(model.StageRetrieval, time.Now())
	retrieveResult := o.retrieval.Retrieve(ctx, intent)
	mctx.EndStage(model.StageRetrieval, time.Now())
	entry.RetrievalSource = retrieveResult.Source
	entry.CandidateCount = len(retrieveResult.Candidates)
	entry.RetrievalTimeMs = retrieveResult.DurationMs

	o.listeners.Dispatch(HookAfterRetrieval, HookPayload{RequestID: requestID, Query: query, Intent: intent})

	if !retrieveResult.Success && len(retrieveResult.Candidates) == 0 {
		resp := model.NewFailure(rawQuery, requestID, ErrCodeRetrievalUnavailable, retrieveResult.Error)
		o.recordFailure(requestID, resp)
		return resp
	}
	candidates := retrieveResult.Candidates

	// Stage 3: Filtering.
	mctx.StartStage(model.StageFilter, time.Now())
	filterResult := o.filtering.Filter(ctx, intent, candidates)
	mctx.EndStage(model.StageFilter, time.Now())
	entry.PreFilterCount = filterResult.PreFilterCount
	entry.PostFilterCount = len(filterResult.Candidates)
	entry.FiltersApplied = filterResult.FiltersApplied
	entry.FilterTimeMs = filterResult.DurationMs

	o.listeners.Dispatch(HookAfterFiltering, HookPayload{RequestID: requestID, Query: query, Intent: intent})
	candidates = filterResult.Candidates

	// Stage 4: Ranking.
	mctx.StartStage(model.StageRank, time.Now())
	rankResult := o.ranking.Rank(ctx, intent, candidates)
	mctx.EndStage(model.StageRank, time.Now())
	entry.RankingMethod = string(rankResult.ExperimentGroup)
	entry.Weights = rankResult.Weights.AsMap()
	entry.RankTimeMs = rankResult.DurationMs

	o.listeners.Dispatch(HookAfterRanking, HookPayload{RequestID: requestID, Query: query, Intent: intent})
	candidates = rankResult.Candidates

	// Pagination happens before explanation so Stage 5 only explains
	// the page actually returned.
	page, pagination := paginate(candidates, opts)

	// Stage 5: Explanation.
	mctx.StartStage(model.StageExplain, time.Now())
	explainResult := o.explanation.Explain(ctx, intent, page)
	mctx.EndStage(model.StageExplain, time.Now())

	results := make([]model.Result, 0, len(page))
	for i, c := range page {
		result := toResult(c, explainResult)
		result.Rank = i + 1
		results = append(results, result)
	}

	entry.ResultCount = len(results)
	if len(results) > 0 {
		entry.TopResultID = results[0].ID
		entry.TopResultScore = results[0].Score
	}
	entry.TotalTimeMs = time.Since(start).Milliseconds()

	timing := mctx.Timing(time.Now())

	resp := model.Response{
		Success: true,
		Query:   rawQuery,
		Understanding: model.Understanding{
			Intent:     intent,
			Method:     string(understandResult.Method),
			Confidence: intent.Confidence,
			SearchType: intent.SearchType,
		},
		Explanation: explainResult.Explanation,
		Results:     results,
		Pagination:  pagination,
		Timing:      timing,
		Meta: model.Meta{
			RequestID:       requestID,
			ExperimentGroup: string(rankResult.ExperimentGroup),
			CacheStatus:     "miss",
		},
	}

	if o.cfg.CachingEnabled && o.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			o.cache.Set(ctx, cache.NamespaceSearch, searchKey, raw)
		}
	}

	o.metrics.RecordSearch(true, len(results), stageLatencies(timing))
	o.log.Info("search completed", slog.String("requestId", requestID), slog.Int("results", len(results)))
	o.log.Debug("search log entry", slog.Any("entry", entry))

	o.listeners.Dispatch(HookAfterSearch, HookPayload{RequestID: requestID, Query: query, Intent: intent, Response: &resp})

	return resp
}

func (o *Orchestrator) recordFailure(requestID string, resp model.Response) {
	o.metrics.RecordSearch(false, 0, nil)
	o.log.Warn("search failed", slog.String("requestId", requestID), slog.String("errorCode", resp.ErrorCode))
}

// stageLatencies maps a response Timing onto the telemetry package's
// per-stage latency keys.
func stageLatencies(t model.Timing) map[telemetry.Stage]float64 {
	return map[telemetry.Stage]float64{
		telemetry.StageUnderstanding: float64(t.Understanding),
		telemetry.StageRetrieval:     float64(t.Retrieval),
		telemetry.StageFiltering:     float64(t.Filtering),
		telemetry.StageRanking:       float64(t.Ranking),
		telemetry.StageExplanation:   float64(t.Explanation),
		telemetry.StageTotal:         float64(t.Total),
	}
}

// intentCacheSubset extracts the fields of an Intent that influence
// retrieval, for folding into the full-response cache key (spec §4.9).
func intentCacheSubset(intent model.Intent) map[string]any {
	return map[string]any{
		"partNumber":     intent.PartNumber,
		"crossReference": intent.CrossReference,
		"category":       intent.Category,
		"brand":          intent.Brand,
		"vehicleMake":    intent.VehicleMake,
		"vehicleModel":   intent.VehicleModel,
		"vehicleYear":    intent.VehicleYear,
		"searchType":     string(intent.SearchType),
	}
}

func toResult(c model.Candidate, explain explanation.Result) model.Result {
	return model.Result{
		ID:              c.ID,
		Rank:            c.Rank,
		Score:           c.RankScore,
		PartNumber:      c.Source.PartNumber,
		Brand:           c.Source.Brand,
		Category:        c.Source.Category,
		Description:     c.Source.Description,
		Price:           c.Source.Price,
		Stock:           c.Source.Stock,
		ImageURL:        c.Source.ImageURL,
		VehicleFitments: c.Source.VehicleFitments,
		CrossReferences: c.Source.CrossReferences,
		OEMReferences:   c.Source.OEMReferences,
		Reasons:         explain.Reasons[c.ID],
		Highlights:      explain.Highlights[c.ID],
		Source:          c.Source,
		FeaturesDebug:   c.Features,
	}
}
