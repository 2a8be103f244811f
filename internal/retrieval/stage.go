package retrieval

import (
	"context"
	"log/slog"
	"time"

	"partsearch/internal/breaker"
	"partsearch/internal/cache"
	"partsearch/internal/model"
	"partsearch/internal/parsing"
)

// Result is Stage 2's output (spec §4.4).
type Result struct {
	Success    bool
	Candidates []model.Candidate
	Strategy   Strategy
	Source     string
	DurationMs int64
	Error      string
}

// Retriever is the capability contract the orchestrator depends on.
type Retriever interface {
	Retrieve(ctx context.Context, intent model.Intent) Result
}

// Noop always returns an empty, unsuccessful result. Used when
// stages.retrieval.enabled is false.
type Noop struct{}

func (Noop) Retrieve(_ context.Context, _ model.Intent) Result {
	return Result{Success: false, Strategy: StrategyMultiField, Error: "retrieval disabled"}
}

// Config tunes Stage instance behavior (spec §4.4).
type Config struct {
	Size      int
	MinScore  float64
	TimeoutMs int
}

// DefaultConfig returns sane defaults for the retrieval stage.
func DefaultConfig() Config {
	return Config{Size: MaxCandidates, MinScore: MinRelevance, TimeoutMs: 2000}
}

// Stage is the concrete Retriever (spec §4.4).
type Stage struct {
	cfg     Config
	index   TextIndex
	cache   *cache.TwoTier
	breaker *breaker.Breaker
	log     *slog.Logger
}

// NewStage wires a Stage.
func NewStage(cfg Config, index TextIndex, c *cache.TwoTier, br *breaker.Breaker, log *slog.Logger) *Stage {
	if log == nil {
		log = slog.Default()
	}
	return &Stage{cfg: cfg, index: index, cache: c, breaker: br, log: log}
}

var _ Retriever = Noop{}
var _ Retriever = (*Stage)(nil)

// Retrieve runs the full Stage 2 pipeline (spec §4.4).
func (s *Stage) Retrieve(ctx context.Context, intent model.Intent) Result {
	start := time.Now()
	elapsed := func() int64 { return time.Since(start).Milliseconds() }

	strategy := SelectStrategy(intent)

	if strategy == StrategyExactPartNumber {
		if cand, ok := s.partCacheProbe(ctx, intent.PartNumber); ok {
			return Result{Success: true, Candidates: []model.Candidate{cand}, Strategy: strategy, Source: "cache", DurationMs: elapsed()}
		}
	}

	if strategy == StrategyMultiField && !HasMultiFieldTerms(intent) {
		return Result{Success: false, Candidates: nil, Strategy: strategy, Error: "no terms available for multiField search", DurationMs: elapsed()}
	}

	resp, err := s.search(ctx, strategy, intent)
	if err != nil && strategy == StrategyExactPartNumber {
		// Exact match came back empty or failed: fall back to a fuzzy
		// pass on the same field before giving up (spec §4.4).
		strategy = StrategyFuzzyPartNumber
		resp, err = s.search(ctx, strategy, intent)
	}
	if err != nil {
		return Result{Success: false, Strategy: strategy, Error: err.Error(), DurationMs: elapsed()}
	}
	if len(resp.Hits) == 0 && SelectStrategy(intent) == StrategyExactPartNumber {
		strategy = StrategyFuzzyPartNumber
		resp, err = s.search(ctx, strategy, intent)
		if err != nil {
			return Result{Success: false, Strategy: strategy, Error: err.Error(), DurationMs: elapsed()}
		}
	}

	candidates := make([]model.Candidate, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		candidates = append(candidates, hitToCandidate(hit))
	}

	return Result{Success: true, Candidates: candidates, Strategy: strategy, Source: "index", DurationMs: elapsed()}
}

func (s *Stage) search(ctx context.Context, strategy Strategy, intent model.Intent) (Response, error) {
	req := Request{
		Query:     BuildQuery(strategy, intent),
		Size:      s.cfg.Size,
		MinScore:  s.cfg.MinScore,
		TimeoutMs: s.cfg.TimeoutMs,
	}

	call := func() (Response, error) {
		return s.index.Search(ctx, req)
	}

	if s.breaker == nil {
		return call()
	}

	var callErr error
	resp := breaker.Execute(s.breaker, func() (Response, error) {
		r, err := call()
		callErr = err
		return r, err
	}, func(error) Response {
		return Response{}
	})
	return resp, callErr
}

// partCacheProbe looks up a single part by its normalized part number
// in the L1/L2 cache, the special-case rule for exactPartNumber (spec
// §4.4, §4.9).
func (s *Stage) partCacheProbe(ctx context.Context, partNumber string) (model.Candidate, bool) {
	if s.cache == nil {
		return model.Candidate{}, false
	}
	raw, hit := s.cache.Get(ctx, cache.NamespacePart, cache.PartKey(parsing.NormalizePartNumber(partNumber)))
	if !hit {
		return model.Candidate{}, false
	}
	return candidateFromCachedJSON(raw)
}

func hitToCandidate(hit Hit) model.Candidate {
	return model.Candidate{
		ID:     hit.ID,
		Score:  hit.Score,
		Source: sourceFromMap(hit.Source),
	}
}
