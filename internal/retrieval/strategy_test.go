package retrieval

import (
	"testing"

	"partsearch/internal/model"
)

func TestSelectStrategy_PriorityOrder(t *testing.T) {
	cases := []struct {
		name   string
		intent model.Intent
		want   Strategy
	}{
		{
			name:   "part number wins over everything else",
			intent: model.Intent{PartNumber: "ABC123", CrossReference: "XYZ", VehicleMake: "Fiat", Category: "filtro", Brand: []string{"Wega"}},
			want:   StrategyExactPartNumber,
		},
		{
			name:   "cross reference wins over fitment and catalog",
			intent: model.Intent{CrossReference: "XYZ", VehicleMake: "Fiat", Category: "filtro", Brand: []string{"Wega"}},
			want:   StrategyCrossReference,
		},
		{
			name:   "fitment requires make and category",
			intent: model.Intent{VehicleMake: "Fiat", Category: "filtro", Brand: []string{"Wega"}},
			want:   StrategyFitment,
		},
		{
			name:   "catalog browse requires brand and category without a vehicle make",
			intent: model.Intent{Category: "filtro", Brand: []string{"Wega"}},
			want:   StrategyCatalogBrowse,
		},
		{
			name:   "multiField is the fallback",
			intent: model.Intent{Category: "filtro"},
			want:   StrategyMultiField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectStrategy(tc.intent)
			if got != tc.want {
				t.Errorf("SelectStrategy() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildQuery_ExactPartNumber(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC123"}
	q := BuildQuery(StrategyExactPartNumber, intent)

	if q.Bool == nil || len(q.Bool.Must) != 1 {
		t.Fatalf("expected a single must clause, got %+v", q)
	}
	term := q.Bool.Must[0].Term
	if term == nil || term.Field != FieldPartNumberNormalized || term.Value != "ABC123" {
		t.Errorf("unexpected term clause: %+v", term)
	}
}

func TestBuildQuery_FuzzyPartNumber(t *testing.T) {
	intent := model.Intent{PartNumber: "ABC123"}
	q := BuildQuery(StrategyFuzzyPartNumber, intent)

	if q.Bool == nil || len(q.Bool.Must) != 1 {
		t.Fatalf("expected a single must clause, got %+v", q)
	}
	fuzzy := q.Bool.Must[0].Fuzzy
	if fuzzy == nil {
		t.Fatalf("expected a fuzzy clause, got %+v", q.Bool.Must[0])
	}
	if fuzzy.Fuzziness != 1 || fuzzy.PrefixLength != 2 {
		t.Errorf("unexpected fuzziness/prefixLength: %+v", fuzzy)
	}
}

func TestBuildQuery_CrossReference(t *testing.T) {
	intent := model.Intent{CrossReference: "XREF-1"}
	q := BuildQuery(StrategyCrossReference, intent)

	if q.Bool == nil || q.Bool.MinimumShouldMatch != 1 {
		t.Fatalf("expected minimum_should_match 1, got %+v", q.Bool)
	}
	if len(q.Bool.Should) != 3 {
		t.Errorf("expected 3 should clauses (crossReferences/oemReferences/supersededBy), got %d", len(q.Bool.Should))
	}
}

func TestBuildQuery_Fitment_IncludesYearRange(t *testing.T) {
	intent := model.Intent{VehicleMake: "Fiat", VehicleModel: "Uno", VehicleYear: 2015, Category: "filtro"}
	q := BuildQuery(StrategyFitment, intent)

	if q.Bool == nil || len(q.Bool.Must) != 2 {
		t.Fatalf("expected make+category must clauses, got %+v", q.Bool)
	}
	if len(q.Bool.Should) != 2 {
		t.Fatalf("expected a model-match should and a year-range should, got %d", len(q.Bool.Should))
	}
	yearClause := q.Bool.Should[1].Bool
	if yearClause == nil || len(yearClause.Must) != 2 {
		t.Fatalf("expected the year should clause to be a bool with two range musts, got %+v", yearClause)
	}
	if yearClause.Must[0].Range.Lte == nil || *yearClause.Must[0].Range.Lte != 2015 {
		t.Errorf("expected yearFrom <= 2015")
	}
	if yearClause.Must[1].Range.Gte == nil || *yearClause.Must[1].Range.Gte != 2015 {
		t.Errorf("expected yearTo >= 2015")
	}
}

func TestBuildQuery_Fitment_NoYearNoModel(t *testing.T) {
	intent := model.Intent{VehicleMake: "Fiat", Category: "filtro"}
	q := BuildQuery(StrategyFitment, intent)
	if len(q.Bool.Should) != 0 {
		t.Errorf("expected no should clauses without model or year, got %d", len(q.Bool.Should))
	}
}

func TestBuildQuery_CatalogBrowse(t *testing.T) {
	intent := model.Intent{Brand: []string{"Wega", "Tecfil"}, Category: "filtro"}
	q := BuildQuery(StrategyCatalogBrowse, intent)

	if q.Bool == nil || len(q.Bool.Must) != 2 {
		t.Fatalf("expected brand+category must clauses, got %+v", q.Bool)
	}
	terms := q.Bool.Must[0].Terms
	if terms == nil || len(terms.Values) != 2 {
		t.Errorf("expected a terms clause over both brands, got %+v", terms)
	}
}

func TestHasMultiFieldTerms(t *testing.T) {
	if HasMultiFieldTerms(model.Intent{}) {
		t.Error("expected no terms for an empty intent")
	}
	if !HasMultiFieldTerms(model.Intent{Category: "filtro"}) {
		t.Error("expected a term from a non-empty category")
	}
}

func TestBuildQuery_MultiField_EmptyIntentReturnsZeroQuery(t *testing.T) {
	q := BuildQuery(StrategyMultiField, model.Intent{})
	if q.Bool != nil {
		t.Errorf("expected a zero Query when no terms are available, got %+v", q)
	}
}

func TestBuildQuery_MultiField_OneShouldPerTerm(t *testing.T) {
	intent := model.Intent{Category: "filtro", VehicleMake: "Fiat", Brand: []string{"Wega"}}
	q := BuildQuery(StrategyMultiField, intent)

	if q.Bool == nil || q.Bool.MinimumShouldMatch != 1 {
		t.Fatalf("expected minimum_should_match 1, got %+v", q.Bool)
	}
	if len(q.Bool.Should) != 3 {
		t.Errorf("expected one should clause per non-empty term, got %d", len(q.Bool.Should))
	}
	for _, s := range q.Bool.Should {
		if s.MultiMatch == nil || len(s.MultiMatch.Fields) == 0 {
			t.Errorf("expected every should clause to be a multi_match, got %+v", s)
		}
	}
}
