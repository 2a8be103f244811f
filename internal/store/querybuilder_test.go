package store

import (
	"strings"
	"testing"

	"partsearch/internal/retrieval"
)

func TestBuildWhere_Term(t *testing.T) {
	q := retrieval.Query{Term: &retrieval.TermQuery{Field: retrieval.FieldPartNumberNormalized, Value: "ABC123"}}

	clause, args, rankTerm, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "part_number_normalized = $1" {
		t.Errorf("unexpected clause: %q", clause)
	}
	if len(args) != 1 || args[0] != "ABC123" {
		t.Errorf("unexpected args: %+v", args)
	}
	if rankTerm != "" {
		t.Errorf("expected no rank term from a pure term query, got %q", rankTerm)
	}
}

func TestBuildWhere_BoolMustAnd(t *testing.T) {
	q := retrieval.Query{Bool: &retrieval.BoolQuery{Must: []retrieval.Query{
		{Term: &retrieval.TermQuery{Field: retrieval.FieldBrand, Value: "Wega"}},
		{Term: &retrieval.TermQuery{Field: retrieval.FieldCategory, Value: "filtro"}},
	}}}

	clause, args, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "brand = $1") || !strings.Contains(clause, "category = $2") || !strings.Contains(clause, " AND ") {
		t.Errorf("expected an AND-joined clause, got %q", clause)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 positional args, got %d", len(args))
	}
}

func TestBuildWhere_BoolShouldMinimumMatch(t *testing.T) {
	q := retrieval.Query{Bool: &retrieval.BoolQuery{
		Should: []retrieval.Query{
			{Term: &retrieval.TermQuery{Field: retrieval.FieldCrossReferences, Value: "X1"}},
			{Term: &retrieval.TermQuery{Field: retrieval.FieldOEMReferences, Value: "X1"}},
		},
		MinimumShouldMatch: 1,
	}}

	clause, _, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, ">= 1") {
		t.Errorf("expected a boolean-sum >= 1 comparison, got %q", clause)
	}
	if !strings.Contains(clause, "CASE WHEN") {
		t.Errorf("expected CASE WHEN-based should emulation, got %q", clause)
	}
}

func TestBuildWhere_TermsOnArrayFieldUsesOverlap(t *testing.T) {
	q := retrieval.Query{Terms: &retrieval.TermsQuery{Field: retrieval.FieldCrossReferences, Values: []string{"A", "B"}}}
	clause, args, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "&&") {
		t.Errorf("expected array-overlap operator for an array field, got %q", clause)
	}
	if len(args) != 1 {
		t.Fatalf("expected the values slice bound as a single arg, got %+v", args)
	}
}

func TestBuildWhere_TermsOnScalarFieldUsesAny(t *testing.T) {
	q := retrieval.Query{Terms: &retrieval.TermsQuery{Field: retrieval.FieldBrand, Values: []string{"Wega", "Tecfil"}}}
	clause, _, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "= ANY(") {
		t.Errorf("expected = ANY(...) for a scalar field, got %q", clause)
	}
}

func TestBuildWhere_FuzzyUsesTrigramSimilarity(t *testing.T) {
	q := retrieval.Query{Fuzzy: &retrieval.FuzzyQuery{Field: retrieval.FieldPartNumberNormalized, Value: "ABC123", Fuzziness: 1, PrefixLength: 2}}
	clause, _, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "similarity(") {
		t.Errorf("expected a pg_trgm similarity() call, got %q", clause)
	}
}

func TestBuildWhere_MatchAndMultiMatch_CollectRankTerm(t *testing.T) {
	q := retrieval.Query{Bool: &retrieval.BoolQuery{Should: []retrieval.Query{
		{Match: &retrieval.MatchQuery{Field: retrieval.FieldDescription, Value: "filtro de oleo"}},
		{MultiMatch: &retrieval.MultiMatchQuery{Fields: []string{retrieval.FieldDescription, retrieval.FieldBrand}, Value: "wega"}},
	}, MinimumShouldMatch: 1}}

	_, _, rankTerm, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rankTerm, "filtro de oleo") || !strings.Contains(rankTerm, "wega") {
		t.Errorf("expected both textual leaves folded into the rank term, got %q", rankTerm)
	}
}

func TestBuildWhere_RangeOnFitmentYears(t *testing.T) {
	year := 2015
	q := retrieval.Query{Bool: &retrieval.BoolQuery{Must: []retrieval.Query{
		{Range: &retrieval.RangeQuery{Field: retrieval.FieldFitmentYearFrom, Lte: &year}},
		{Range: &retrieval.RangeQuery{Field: retrieval.FieldFitmentYearTo, Gte: &year}},
	}}}

	clause, args, _, err := buildWhere(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "jsonb_array_elements(vehicle_fitments)") {
		t.Errorf("expected a jsonb_array_elements EXISTS clause, got %q", clause)
	}
	if len(args) != 2 || args[0] != 2015 || args[1] != 2015 {
		t.Errorf("unexpected args: %+v", args)
	}
}

func TestBuildWhere_ZeroQueryIsAlwaysTrue(t *testing.T) {
	clause, args, rankTerm, err := buildWhere(retrieval.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "TRUE" {
		t.Errorf("expected TRUE for a zero-value query, got %q", clause)
	}
	if len(args) != 0 || rankTerm != "" {
		t.Errorf("expected no args/rank term for a zero-value query")
	}
}
