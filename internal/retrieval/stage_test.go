package retrieval

import (
	"context"
	"errors"
	"testing"

	"partsearch/internal/model"
)

type fakeIndex struct {
	calls     int
	responses []Response
	errs      []error
}

func (f *fakeIndex) Search(_ context.Context, _ Request) (Response, error) {
	i := f.calls
	f.calls++
	var resp Response
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return resp, err
}

func TestStage_Retrieve_MultiField_NoTermsRefusesToRun(t *testing.T) {
	idx := &fakeIndex{}
	s := NewStage(DefaultConfig(), idx, nil, nil, nil)

	result := s.Retrieve(context.Background(), model.Intent{})

	if result.Success {
		t.Error("expected Success=false for an empty intent")
	}
	if idx.calls != 0 {
		t.Errorf("expected the adapter never to be called, got %d calls", idx.calls)
	}
}

func TestStage_Retrieve_ExactPartNumber_FallsBackToFuzzyOnEmptyHits(t *testing.T) {
	idx := &fakeIndex{
		responses: []Response{
			{Hits: nil},
			{Hits: []Hit{{ID: "p1", Score: 0.9, Source: map[string]any{"partNumber": "ABC123"}}}},
		},
	}
	s := NewStage(DefaultConfig(), idx, nil, nil, nil)

	result := s.Retrieve(context.Background(), model.Intent{PartNumber: "ABC123"})

	if !result.Success {
		t.Fatalf("expected eventual success via fuzzy fallback, got error %q", result.Error)
	}
	if result.Strategy != StrategyFuzzyPartNumber {
		t.Errorf("expected the reported strategy to be fuzzyPartNumber, got %q", result.Strategy)
	}
	if idx.calls != 2 {
		t.Errorf("expected exactly two adapter calls (exact then fuzzy), got %d", idx.calls)
	}
	if len(result.Candidates) != 1 || result.Candidates[0].ID != "p1" {
		t.Errorf("unexpected candidates: %+v", result.Candidates)
	}
}

func TestStage_Retrieve_ExactPartNumber_FallsBackOnError(t *testing.T) {
	idx := &fakeIndex{
		responses: []Response{{}, {Hits: []Hit{{ID: "p1"}}}},
		errs:      []error{errors.New("index unavailable"), nil},
	}
	s := NewStage(DefaultConfig(), idx, nil, nil, nil)

	result := s.Retrieve(context.Background(), model.Intent{PartNumber: "ABC123"})

	if !result.Success {
		t.Fatalf("expected the fuzzy retry to succeed, got error %q", result.Error)
	}
	if idx.calls != 2 {
		t.Errorf("expected a retry after the initial error, got %d calls", idx.calls)
	}
}

func TestStage_Retrieve_FitmentStrategy_NoFallback(t *testing.T) {
	idx := &fakeIndex{
		responses: []Response{{Hits: []Hit{{ID: "p1"}}}},
	}
	s := NewStage(DefaultConfig(), idx, nil, nil, nil)

	result := s.Retrieve(context.Background(), model.Intent{VehicleMake: "Fiat", Category: "filtro"})

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Strategy != StrategyFitment {
		t.Errorf("expected strategy fitment, got %q", result.Strategy)
	}
	if idx.calls != 1 {
		t.Errorf("expected exactly one adapter call for a non-partNumber strategy, got %d", idx.calls)
	}
}
