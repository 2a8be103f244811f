package retrieval

import (
	"partsearch/internal/model"
	"partsearch/internal/parsing"
)

// Strategy is the retrieval plan selected from an Intent (spec
// GLOSSARY).
type Strategy string

const (
	StrategyExactPartNumber Strategy = "exactPartNumber"
	StrategyFuzzyPartNumber Strategy = "fuzzyPartNumber"
	StrategyCrossReference  Strategy = "crossReference"
	StrategyFitment         Strategy = "fitment"
	StrategyCatalogBrowse   Strategy = "catalogBrowse"
	StrategyMultiField      Strategy = "multiField"
)

// SelectStrategy picks exactly one strategy from the Intent, in the
// priority order spec §4.4 defines.
func SelectStrategy(intent model.Intent) Strategy {
	switch {
	case intent.PartNumber != "":
		return StrategyExactPartNumber
	case intent.CrossReference != "":
		return StrategyCrossReference
	case intent.VehicleMake != "" && intent.Category != "":
		return StrategyFitment
	case len(intent.Brand) > 0 && intent.Category != "":
		return StrategyCatalogBrowse
	default:
		return StrategyMultiField
	}
}

// BuildQuery constructs the boolean query tree for the given strategy
// (spec §4.4).
func BuildQuery(strategy Strategy, intent model.Intent) Query {
	switch strategy {
	case StrategyExactPartNumber, StrategyFuzzyPartNumber:
		return buildPartNumberQuery(intent, strategy == StrategyFuzzyPartNumber)
	case StrategyCrossReference:
		return buildCrossReferenceQuery(intent)
	case StrategyFitment:
		return buildFitmentQuery(intent)
	case StrategyCatalogBrowse:
		return buildCatalogBrowseQuery(intent)
	default:
		return buildMultiFieldQuery(intent)
	}
}

func buildPartNumberQuery(intent model.Intent, fuzzy bool) Query {
	normalized := parsing.NormalizePartNumber(intent.PartNumber)
	must := []Query{
		{Term: &TermQuery{Field: FieldPartNumberNormalized, Value: normalized}},
	}
	if fuzzy {
		must = []Query{
			{Fuzzy: &FuzzyQuery{Field: FieldPartNumberNormalized, Value: normalized, Fuzziness: 1, PrefixLength: 2}},
		}
	}
	return Query{Bool: &BoolQuery{Must: must}}
}

func buildCrossReferenceQuery(intent model.Intent) Query {
	return Query{
		Bool: &BoolQuery{
			Should: []Query{
				{Term: &TermQuery{Field: FieldCrossReferences, Value: intent.CrossReference}},
				{Term: &TermQuery{Field: FieldOEMReferences, Value: intent.CrossReference}},
				{Term: &TermQuery{Field: FieldSupersededBy, Value: intent.CrossReference}},
			},
			MinimumShouldMatch: 1,
		},
	}
}

func buildFitmentQuery(intent model.Intent) Query {
	must := []Query{
		{Term: &TermQuery{Field: FieldFitmentMake, Value: intent.VehicleMake}},
		{Term: &TermQuery{Field: FieldCategory, Value: intent.Category}},
	}

	var should []Query
	if intent.VehicleModel != "" {
		should = append(should, Query{Match: &MatchQuery{Field: FieldFitmentModel, Value: intent.VehicleModel}})
	}
	if intent.VehicleYear != 0 {
		year := intent.VehicleYear
		should = append(should, Query{
			Bool: &BoolQuery{
				Must: []Query{
					{Range: &RangeQuery{Field: FieldFitmentYearFrom, Lte: &year}},
					{Range: &RangeQuery{Field: FieldFitmentYearTo, Gte: &year}},
				},
			},
		})
	}

	return Query{Bool: &BoolQuery{Must: must, Should: should}}
}

func buildCatalogBrowseQuery(intent model.Intent) Query {
	return Query{
		Bool: &BoolQuery{
			Must: []Query{
				{Terms: &TermsQuery{Field: FieldBrand, Values: intent.Brand}},
				{Term: &TermQuery{Field: FieldCategory, Value: intent.Category}},
			},
		},
	}
}

// buildMultiFieldQuery assembles a best-fields multi_match across the
// non-empty Intent terms. If no terms are available the caller must
// refuse to run (spec §4.4: "returns empty candidates, success false").
func buildMultiFieldQuery(intent model.Intent) Query {
	terms := multiFieldTerms(intent)
	if len(terms) == 0 {
		return Query{}
	}
	var should []Query
	for _, t := range terms {
		should = append(should, Query{
			MultiMatch: &MultiMatchQuery{
				Fields:    []string{FieldDescription, FieldPartNumber, FieldBrand, FieldCategory, FieldSpecifications},
				Value:     t,
				Type:      "best_fields",
				Fuzziness: 1,
			},
		})
	}
	return Query{Bool: &BoolQuery{Should: should, MinimumShouldMatch: 1}}
}

// multiFieldTerms collects every non-empty term available on the
// Intent for the fallback multiField strategy.
func multiFieldTerms(intent model.Intent) []string {
	var terms []string
	add := func(s string) {
		if s != "" {
			terms = append(terms, s)
		}
	}
	add(intent.PartNumber)
	add(intent.Category)
	add(intent.VehicleMake)
	add(intent.VehicleModel)
	add(intent.EngineCode)
	for _, b := range intent.Brand {
		add(b)
	}
	return terms
}

// HasMultiFieldTerms reports whether buildMultiFieldQuery would
// assemble a non-empty term set, so the stage can short-circuit per
// spec §4.4 without invoking the adapter.
func HasMultiFieldTerms(intent model.Intent) bool {
	return len(multiFieldTerms(intent)) > 0
}
