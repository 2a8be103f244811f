package filtering

import (
	"context"
	"testing"

	"partsearch/internal/model"
)

func candidate(id, brand, category string, stock int, price float64) model.Candidate {
	return model.Candidate{
		ID: id,
		Source: model.PartSource{
			PartNumber: id,
			Brand:      brand,
			Category:   category,
			Stock:      stock,
			InStock:    stock > 0,
			Price:      price,
		},
	}
}

func TestFilter_HardFilters_BrandSubstringEitherWay(t *testing.T) {
	s := NewStage(Config{})
	candidates := []model.Candidate{
		candidate("p1", "Wega Filtros", "oleo", 5, 10),
		candidate("p2", "Tecfil", "oleo", 5, 10),
	}
	intent := model.Intent{Brand: []string{"Wega"}}

	result := s.Filter(context.Background(), intent, candidates)

	if len(result.Candidates) != 1 || result.Candidates[0].ID != "p1" {
		t.Fatalf("expected only p1 to survive the brand filter, got %+v", result.Candidates)
	}
}

func TestFilter_HardFilters_VehicleYearRange(t *testing.T) {
	s := NewStage(Config{})
	inRange := candidate("p1", "Wega", "oleo", 5, 10)
	inRange.Source.VehicleFitments = []model.VehicleFitment{{Make: "Fiat", YearFrom: 2010, YearTo: 2018}}
	outOfRange := candidate("p2", "Wega", "oleo", 5, 10)
	outOfRange.Source.VehicleFitments = []model.VehicleFitment{{Make: "Fiat", YearFrom: 2019, YearTo: 2022}}

	result := s.Filter(context.Background(), model.Intent{VehicleYear: 2015}, []model.Candidate{inRange, outOfRange})

	if len(result.Candidates) != 1 || result.Candidates[0].ID != "p1" {
		t.Fatalf("expected only the in-range fitment to survive, got %+v", result.Candidates)
	}
}

func TestFilter_SoftScoring_ExactPartNumberBonus(t *testing.T) {
	s := NewStage(Config{})
	c := candidate("ABC123", "Wega", "oleo", 5, 10)
	c.Source.PartNumberNormalized = "ABC123"

	result := s.Filter(context.Background(), model.Intent{PartNumber: "ABC123"}, []model.Candidate{c})

	if len(result.Candidates) != 1 {
		t.Fatalf("expected the candidate to survive, got %+v", result.Candidates)
	}
	if result.Candidates[0].SoftScore < 0.3 {
		t.Errorf("expected the exact part-number bonus of 0.3, got softScore=%f", result.Candidates[0].SoftScore)
	}
}

func TestFilter_QualityGate_OnlyAppliesAboveTenCandidates(t *testing.T) {
	s := NewStage(Config{})

	// Five low-quality candidates: below the >10 threshold, so the gate
	// must not drop any of them even though qualityScore will be 0.
	var few []model.Candidate
	for i := 0; i < 5; i++ {
		few = append(few, model.Candidate{ID: string(rune('a' + i))})
	}
	result := s.Filter(context.Background(), model.Intent{}, few)
	if len(result.Candidates) != 5 {
		t.Errorf("expected the quality gate to be skipped below 10 candidates, got %d survivors", len(result.Candidates))
	}

	// Fifteen low-quality candidates: above the threshold, gate removes
	// the zero-quality ones.
	var many []model.Candidate
	for i := 0; i < 15; i++ {
		many = append(many, model.Candidate{ID: string(rune('a' + i))})
	}
	result = s.Filter(context.Background(), model.Intent{}, many)
	for _, c := range result.Candidates {
		if c.QualityScore < 0.1 {
			t.Errorf("expected the quality gate to drop zero-quality candidates once the pool exceeds 10, found %q with score %f", c.ID, c.QualityScore)
		}
	}
}

func TestFilter_CompositeSort_Descending(t *testing.T) {
	s := NewStage(Config{})
	low := candidate("low", "Wega", "oleo", 0, 0)
	low.Score = 1
	high := candidate("high", "Wega", "oleo", 10, 50)
	high.Score = 9
	high.Source.Description = "um filtro de oleo bem completo e detalhado"
	high.Source.Specifications = map[string]any{"diametro": "10cm"}
	high.Source.CrossReferences = []string{"X1"}
	high.Source.VehicleFitments = []model.VehicleFitment{{Make: "Fiat"}}

	result := s.Filter(context.Background(), model.Intent{}, []model.Candidate{low, high})

	if result.Candidates[0].ID != "high" {
		t.Errorf("expected the higher composite score to sort first, got order %+v", result.Candidates)
	}
}

func TestFilter_StockPriority_PartitionsInStockFirst(t *testing.T) {
	s := NewStage(Config{StockPriority: true})
	outOfStock := candidate("out", "Wega", "oleo", 0, 10)
	inStock := candidate("in", "Wega", "oleo", 5, 10)
	// Equal composite scores so partition order is the only differentiator.

	result := s.Filter(context.Background(), model.Intent{}, []model.Candidate{outOfStock, inStock})

	if result.Candidates[0].ID != "in" {
		t.Errorf("expected the in-stock candidate first when stock priority is enabled, got %+v", result.Candidates)
	}
}

func TestFilter_TruncatesToMaxResults(t *testing.T) {
	s := NewStage(Config{})
	var candidates []model.Candidate
	for i := 0; i < 250; i++ {
		candidates = append(candidates, model.Candidate{ID: string(rune(i)), Source: model.PartSource{Price: 10}})
	}

	result := s.Filter(context.Background(), model.Intent{}, candidates)

	if len(result.Candidates) != maxResults {
		t.Errorf("expected truncation to %d, got %d", maxResults, len(result.Candidates))
	}
	if result.PreFilterCount != 250 {
		t.Errorf("expected PreFilterCount to reflect the pre-truncation count, got %d", result.PreFilterCount)
	}
}

func TestNoop_PassesThrough(t *testing.T) {
	candidates := []model.Candidate{{ID: "a"}, {ID: "b"}}
	result := Noop{}.Filter(context.Background(), model.Intent{}, candidates)
	if len(result.Candidates) != 2 || result.PreFilterCount != 2 {
		t.Errorf("expected Noop to pass candidates through unchanged, got %+v", result)
	}
}
