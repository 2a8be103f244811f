package ranking

import (
	"context"
	"testing"

	"partsearch/internal/model"
)

func TestStage_Rank_AssignsContiguousRanksInScoreOrder(t *testing.T) {
	s := NewStage(Config{ExperimentGroup: GroupControl})
	candidates := []model.Candidate{
		{ID: "low", Score: 1},
		{ID: "high", Score: 9, Source: model.PartSource{PartNumber: "ABC", Description: "x"}},
	}

	result := s.Rank(context.Background(), model.Intent{}, candidates)

	if !result.Success {
		t.Fatal("expected Success=true")
	}
	for i, c := range result.Candidates {
		if c.Rank != i+1 {
			t.Errorf("expected contiguous 1-based ranks, candidate %q has rank %d at position %d", c.ID, c.Rank, i)
		}
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].RankScore > result.Candidates[i-1].RankScore {
			t.Errorf("expected descending rankScore order, found %f after %f", result.Candidates[i].RankScore, result.Candidates[i-1].RankScore)
		}
	}
}

func TestStage_Rank_HigherESScoreWinsAllElseEqual(t *testing.T) {
	s := NewStage(Config{ExperimentGroup: GroupControl})
	candidates := []model.Candidate{
		{ID: "weak", Score: 1},
		{ID: "strong", Score: 10},
	}

	result := s.Rank(context.Background(), model.Intent{}, candidates)

	if result.Candidates[0].ID != "strong" {
		t.Errorf("expected the higher-relevance candidate to rank first, got order %+v", result.Candidates)
	}
}

func TestApplyGradient_ClampsAndRenormalizes(t *testing.T) {
	s := NewStage(Config{ExperimentGroup: GroupControl})

	updated := s.ApplyGradient(GradientSignal{Feature: "esScore", Direction: 1, Magnitude: 100})

	sum := updated.Sum()
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("expected the weight vector to renormalize to sum 1, got %f", sum)
	}
	if updated.ESScore > 1 {
		t.Errorf("expected esScore weight to be clamped to <= 1 before renormalization, got %f", updated.ESScore)
	}
}

func TestApplyGradient_NegativeDirectionLowersWeight(t *testing.T) {
	s := NewStage(Config{ExperimentGroup: GroupControl})
	before := s.Weights().ESScore

	after := s.ApplyGradient(GradientSignal{Feature: "esScore", Direction: -1, Magnitude: 1})

	if after.ESScore >= before {
		t.Errorf("expected a negative gradient to reduce esScore's weight share, before=%f after=%f", before, after.ESScore)
	}
}

func TestExplain_ReturnsTopThreeByValue(t *testing.T) {
	w := DefaultWeights()
	c := model.Candidate{
		RankScore: 1,
		Features: model.Features{
			ESScore:          1,
			PartNumberMatch:  1,
			CategoryMatch:    0,
			BrandMatch:       0,
			VehicleFitment:   1,
			DataCompleteness: 0,
		},
	}

	contributions := Explain(w, c)

	if len(contributions) != 3 {
		t.Fatalf("expected exactly 3 contributions, got %d", len(contributions))
	}
	for i := 1; i < len(contributions); i++ {
		if contributions[i].Value > contributions[i-1].Value {
			t.Errorf("expected contributions sorted descending by value")
		}
	}
}

func TestNoop_AssignsArrivalOrderRanks(t *testing.T) {
	candidates := []model.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	result := Noop{}.Rank(context.Background(), model.Intent{}, candidates)
	for i, c := range result.Candidates {
		if c.Rank != i+1 {
			t.Errorf("expected arrival-order ranks from Noop, got %d at position %d", c.Rank, i)
		}
	}
}
