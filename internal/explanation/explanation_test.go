package explanation

import (
	"strings"
	"testing"

	"partsearch/internal/model"
)

func TestInterpret_PartNumberTemplate(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypePartNumber, PartNumber: "ABC123"}
	got := Interpret(intent, 1)
	if !strings.Contains(got, "ABC123") {
		t.Errorf("expected the interpretation to mention the part number, got %q", got)
	}
}

func TestInterpret_FitmentTemplate(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeFitment, Category: "filtro", VehicleMake: "Fiat", VehicleModel: "Uno", VehicleYear: 2015}
	got := Interpret(intent, 5)
	if !strings.Contains(got, "filtro") || !strings.Contains(got, "Fiat") || !strings.Contains(got, "2015") {
		t.Errorf("expected the fitment template to mention category, make, and year, got %q", got)
	}
}

func TestInterpret_FitmentTemplate_MatchesExactScenarioString(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeFitment, Category: "brake pad", VehicleMake: "Toyota", VehicleModel: "Camry", VehicleYear: 2019}
	got := Interpret(intent, 3)
	want := "Showing brake pad for 2019 Toyota Camry"
	if got != want {
		t.Errorf("expected interpretation %q, got %q", want, got)
	}
}

func TestInterpret_GeneralTemplate_UsesResultCount(t *testing.T) {
	got := Interpret(model.Intent{SearchType: model.SearchTypeGeneral}, 42)
	if !strings.Contains(got, "42") {
		t.Errorf("expected the general template to include the result count, got %q", got)
	}
}

func TestReasons_ExactPartNumberIsHighWeight(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC123"}
	c := model.Candidate{Source: model.PartSource{PartNumberNormalized: "ABC123"}}

	reasons := Reasons(intent, c)

	if len(reasons) == 0 || reasons[0].Weight != "high" {
		t.Fatalf("expected the top reason to be high weight, got %+v", reasons)
	}
}

func TestReasons_TruncatesToTopThree(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC123", CrossReference: "X1"}
	c := model.Candidate{
		Source: model.PartSource{
			PartNumberNormalized: "ABC123",
			CrossReferences:      []string{"X1"},
			InStock:              true,
		},
		Features:     model.Features{BrandMatch: 0.8, CategoryMatch: 0.8, VehicleFitment: 0.5},
		QualityScore: 0.9,
	}

	reasons := Reasons(intent, c)

	if len(reasons) > 3 {
		t.Errorf("expected at most 3 reasons, got %d", len(reasons))
	}
}

func TestHighlights_DescriptionWindowAroundFirstMatch(t *testing.T) {
	c := model.Candidate{Source: model.PartSource{Description: strings.Repeat("x", 50) + "filtro de oleo" + strings.Repeat("y", 50)}}

	highlights := Highlights(model.Intent{}, c, []string{"filtro de oleo"})

	if len(highlights) != 1 {
		t.Fatalf("expected one highlight, got %+v", highlights)
	}
	if !strings.Contains(highlights[0], "filtro de oleo") {
		t.Errorf("expected the window to contain the matched term, got %q", highlights[0])
	}
	if len(highlights[0]) >= len(c.Source.Description) {
		t.Errorf("expected the window to be narrower than the full description")
	}
}

func TestHighlights_PartNumberPositionalMatch(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC"}
	c := model.Candidate{Source: model.PartSource{PartNumber: "ABC123"}}

	highlights := Highlights(intent, c, nil)

	if len(highlights) == 0 || highlights[0] != "ABC123" {
		t.Errorf("expected a part-number highlight, got %+v", highlights)
	}
}

func TestSuggestions_ZeroResultsGivesGenericTips(t *testing.T) {
	suggestions := Suggestions(model.Intent{}, 0)
	if len(suggestions) == 0 {
		t.Fatal("expected generic refinement tips for zero results")
	}
	for _, s := range suggestions {
		if s.Type != "tip" {
			t.Errorf("expected all zero-result suggestions to be tips, got %q", s.Type)
		}
	}
}

func TestSuggestions_ManyResultsGivesNarrowingProposals(t *testing.T) {
	suggestions := Suggestions(model.Intent{}, 150)
	found := false
	for _, s := range suggestions {
		if s.Type == "narrow" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected narrowing suggestions above 100 results, got %+v", suggestions)
	}
}

func TestSuggestions_CrossSellForKnownCategory(t *testing.T) {
	suggestions := Suggestions(model.Intent{Category: "oil filter"}, 5)
	found := false
	for _, s := range suggestions {
		if s.Type == "cross-sell" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cross-sell suggestion for a category with known adjacency, got %+v", suggestions)
	}
}

func TestStage_Explain_BuildsPerCandidateMaps(t *testing.T) {
	s := NewStage()
	candidates := []model.Candidate{
		{ID: "p1", Source: model.PartSource{PartNumber: "ABC123", Description: "filtro de oleo"}},
	}
	intent := model.Intent{PartNumber: "ABC123"}

	result := s.Explain(nil, intent, candidates)

	if !result.Success {
		t.Fatal("expected Success=true")
	}
	if _, ok := result.Reasons["p1"]; !ok {
		t.Errorf("expected a reasons entry keyed by candidate ID")
	}
}
