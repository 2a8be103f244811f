package orchestrator

import (
	"context"
	"math"
	"testing"

	"partsearch/internal/cache"
	"partsearch/internal/explanation"
	"partsearch/internal/filtering"
	"partsearch/internal/model"
	"partsearch/internal/ranking"
	"partsearch/internal/retrieval"
	"partsearch/internal/understanding"
)

type fakeUnderstander struct {
	result understanding.Result
}

func (f fakeUnderstander) Understand(_ context.Context, _ model.Query) understanding.Result {
	return f.result
}

type fakeRetriever struct {
	result retrieval.Result
}

func (f fakeRetriever) Retrieve(_ context.Context, _ model.Intent) retrieval.Result {
	return f.result
}

type passthroughFilterer struct{}

func (passthroughFilterer) Filter(_ context.Context, _ model.Intent, candidates []model.Candidate) filtering.Result {
	return filtering.Result{Success: true, Candidates: candidates, PreFilterCount: len(candidates)}
}

type arrivalRanker struct{}

func (arrivalRanker) Rank(_ context.Context, _ model.Intent, candidates []model.Candidate) ranking.Result {
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return ranking.Result{Success: true, Candidates: candidates, ExperimentGroup: ranking.GroupControl, Weights: ranking.DefaultWeights()}
}

func fullConfig() Config {
	return Config{
		UnderstandingEnabled: true,
		RetrievalEnabled:     true,
		FilteringEnabled:     true,
		RankingEnabled:       true,
		ExplanationEnabled:   true,
		CachingEnabled:       false,
	}
}

func candidates(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{ID: string(rune('a' + i)), Source: model.PartSource{PartNumber: string(rune('a' + i))}}
	}
	return out
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	orch := New(fullConfig(), fakeUnderstander{}, fakeRetriever{}, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	resp := orch.Search(context.Background(), "   ", Options{})

	if resp.Success {
		t.Fatal("expected failure for an empty query")
	}
	if resp.ErrorCode != ErrCodeInvalidQuery {
		t.Errorf("expected ErrCodeInvalidQuery, got %q", resp.ErrorCode)
	}
}

func TestSearch_UnderstandingFailureShortCircuits(t *testing.T) {
	u := fakeUnderstander{result: understanding.Result{Success: false, Error: "could not parse"}}
	orch := New(fullConfig(), u, fakeRetriever{}, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	resp := orch.Search(context.Background(), "some query", Options{})

	if resp.Success || resp.ErrorCode != ErrCodeInvalidQuery {
		t.Errorf("expected an invalid-query failure, got %+v", resp)
	}
}

func TestSearch_RetrievalFailureShortCircuits(t *testing.T) {
	u := fakeUnderstander{result: understanding.Result{Success: true, Intent: model.Intent{SearchType: model.SearchTypeGeneral}}}
	r := fakeRetriever{result: retrieval.Result{Success: false, Candidates: nil, Error: "index down"}}
	orch := New(fullConfig(), u, r, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	resp := orch.Search(context.Background(), "some query", Options{})

	if resp.Success || resp.ErrorCode != ErrCodeRetrievalUnavailable {
		t.Errorf("expected a retrieval-unavailable failure, got %+v", resp)
	}
}

func TestSearch_HappyPath_UniversalInvariants(t *testing.T) {
	u := fakeUnderstander{result: understanding.Result{Success: true, Intent: model.Intent{SearchType: model.SearchTypeGeneral}}}
	r := fakeRetriever{result: retrieval.Result{Success: true, Candidates: candidates(45)}}
	orch := New(fullConfig(), u, r, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	resp := orch.Search(context.Background(), "some query", Options{Page: 2, Limit: 20})

	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if len(resp.Results) > resp.Pagination.Limit {
		t.Errorf("expected len(results) <= limit, got %d > %d", len(resp.Results), resp.Pagination.Limit)
	}
	if resp.Pagination.Total < len(resp.Results) {
		t.Errorf("expected total >= len(results), got total=%d results=%d", resp.Pagination.Total, len(resp.Results))
	}
	wantPages := int(math.Ceil(float64(resp.Pagination.Total) / float64(resp.Pagination.Limit)))
	if resp.Pagination.TotalPages != wantPages {
		t.Errorf("expected totalPages=%d, got %d", wantPages, resp.Pagination.TotalPages)
	}
	for i, res := range resp.Results {
		if res.Rank != i+1 {
			t.Errorf("expected contiguous ranks starting at 1 for the returned page, got rank %d at position %d", res.Rank, i)
		}
	}
}

func TestSearch_PaginationClampsOutOfRangeLimit(t *testing.T) {
	u := fakeUnderstander{result: understanding.Result{Success: true, Intent: model.Intent{SearchType: model.SearchTypeGeneral}}}
	r := fakeRetriever{result: retrieval.Result{Success: true, Candidates: candidates(5)}}
	orch := New(fullConfig(), u, r, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	resp := orch.Search(context.Background(), "some query", Options{Page: 0, Limit: 1000})

	if resp.Pagination.Page != 1 {
		t.Errorf("expected page to clamp to 1, got %d", resp.Pagination.Page)
	}
	if resp.Pagination.Limit != 100 {
		t.Errorf("expected limit to clamp to 100, got %d", resp.Pagination.Limit)
	}
}

func TestSearch_DisabledStagesUseNoop(t *testing.T) {
	cfg := Config{UnderstandingEnabled: false, RetrievalEnabled: true, FilteringEnabled: false, RankingEnabled: false, ExplanationEnabled: false}
	r := fakeRetriever{result: retrieval.Result{Success: true, Candidates: candidates(3)}}
	orch := New(cfg, nil, r, nil, nil, nil, nil, nil, nil)

	resp := orch.Search(context.Background(), "some query", Options{})

	if !resp.Success {
		t.Fatalf("expected success even with every optional stage disabled, got %+v", resp)
	}
	if len(resp.Results) != 3 {
		t.Errorf("expected the Noop filter/ranker to pass all 3 candidates through, got %d", len(resp.Results))
	}
}

func TestSearch_IdenticalRequestReportsCacheStatusCache(t *testing.T) {
	cfg := fullConfig()
	cfg.CachingEnabled = true
	u := fakeUnderstander{result: understanding.Result{Success: true, Intent: model.Intent{SearchType: model.SearchTypeGeneral}}}
	r := fakeRetriever{result: retrieval.Result{Success: true, Candidates: candidates(3)}}
	twoTier := cache.NewTwoTier(cache.DefaultTierConfigs(), nil, nil)
	orch := New(cfg, u, r, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), twoTier, nil, nil)

	first := orch.Search(context.Background(), "some query", Options{})
	if !first.Success {
		t.Fatalf("expected the first search to succeed, got %+v", first)
	}
	if first.Meta.CacheStatus != "miss" {
		t.Errorf("expected the first request to report cacheStatus %q, got %q", "miss", first.Meta.CacheStatus)
	}

	second := orch.Search(context.Background(), "some query", Options{})
	if !second.Success {
		t.Fatalf("expected the second search to succeed, got %+v", second)
	}
	if second.Meta.CacheStatus != "cache" {
		t.Errorf("expected the second identical request to report cacheStatus %q, got %q", "cache", second.Meta.CacheStatus)
	}
}

func TestSearch_HooksDispatchInOrder(t *testing.T) {
	u := fakeUnderstander{result: understanding.Result{Success: true, Intent: model.Intent{SearchType: model.SearchTypeGeneral}}}
	r := fakeRetriever{result: retrieval.Result{Success: true, Candidates: candidates(2)}}
	orch := New(fullConfig(), u, r, passthroughFilterer{}, arrivalRanker{}, explanation.NewStage(), nil, nil, nil)

	var events []HookEvent
	orch.RegisterListener(ListenerFunc(func(event HookEvent, _ HookPayload) {
		events = append(events, event)
	}))

	orch.Search(context.Background(), "some query", Options{})

	want := []HookEvent{HookBeforeSearch, HookAfterUnderstanding, HookAfterRetrieval, HookAfterFiltering, HookAfterRanking, HookAfterSearch}
	if len(events) != len(want) {
		t.Fatalf("expected %d hook events, got %d: %+v", len(want), len(events), events)
	}
	for i, e := range want {
		if events[i] != e {
			t.Errorf("expected hook %d to be %q, got %q", i, e, events[i])
		}
	}
}
