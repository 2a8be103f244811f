package store

import (
	"fmt"
	"strings"

	"partsearch/internal/retrieval"
)

// sqlBuilder accumulates parameterized WHERE clauses and their
// positional arguments while walking a retrieval.Query tree.
type sqlBuilder struct {
	args     []any
	rankTerm []string
}

func (b *sqlBuilder) param(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// buildWhere translates a retrieval.Query tree into a Postgres WHERE
// clause fragment plus its positional arguments, plus a free-text
// ranking term collected from the textual leaves for ts_rank scoring.
// Returns ("TRUE", nil, "", nil) for a zero-value Query (the multiField
// empty-term case, already refused upstream by the retrieval stage).
func buildWhere(q retrieval.Query) (string, []any, string, error) {
	b := &sqlBuilder{}
	clause, err := b.walk(q)
	if err != nil {
		return "", nil, "", err
	}
	return clause, b.args, strings.Join(b.rankTerm, " "), nil
}

func (b *sqlBuilder) walk(q retrieval.Query) (string, error) {
	switch {
	case q.Bool != nil:
		return b.walkBool(*q.Bool)
	case q.Term != nil:
		return b.walkTerm(*q.Term), nil
	case q.Terms != nil:
		return b.walkTerms(*q.Terms), nil
	case q.Prefix != nil:
		return b.walkPrefix(*q.Prefix), nil
	case q.Fuzzy != nil:
		return b.walkFuzzy(*q.Fuzzy), nil
	case q.Match != nil:
		return b.walkMatch(*q.Match), nil
	case q.MultiMatch != nil:
		return b.walkMultiMatch(*q.MultiMatch), nil
	case q.Range != nil:
		return b.walkRange(*q.Range), nil
	default:
		return "TRUE", nil
	}
}

func (b *sqlBuilder) walkBool(bq retrieval.BoolQuery) (string, error) {
	var mustClauses []string
	for _, sub := range bq.Must {
		c, err := b.walk(sub)
		if err != nil {
			return "", err
		}
		mustClauses = append(mustClauses, c)
	}

	var shouldClauses []string
	for _, sub := range bq.Should {
		c, err := b.walk(sub)
		if err != nil {
			return "", err
		}
		shouldClauses = append(shouldClauses, c)
	}

	var parts []string
	if len(mustClauses) > 0 {
		parts = append(parts, "("+strings.Join(mustClauses, " AND ")+")")
	}
	if len(shouldClauses) > 0 {
		min := bq.MinimumShouldMatch
		if min <= 0 {
			min = 1
		}
		parts = append(parts, shouldMinMatch(shouldClauses, min))
	}
	if len(parts) == 0 {
		return "TRUE", nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", nil
}

// shouldMinMatch renders "at least min of these clauses hold" via a
// boolean-sum comparison, since Postgres has no native should/minimum
// should_match operator.
func shouldMinMatch(clauses []string, min int) string {
	var sum []string
	for _, c := range clauses {
		sum = append(sum, fmt.Sprintf("(CASE WHEN %s THEN 1 ELSE 0 END)", c))
	}
	return fmt.Sprintf("(%s) >= %d", strings.Join(sum, " + "), min)
}

func column(field string) string {
	switch field {
	case retrieval.FieldPartNumber:
		return "part_number"
	case retrieval.FieldPartNumberNormalized, retrieval.FieldPartNumberNgram:
		return "part_number_normalized"
	case retrieval.FieldBrand:
		return "brand"
	case retrieval.FieldCategory:
		return "category"
	case retrieval.FieldDescription:
		return "description"
	case retrieval.FieldSpecifications:
		return "specifications::text"
	case retrieval.FieldFitmentMake:
		return "vehicle_fitments"
	case retrieval.FieldFitmentModel:
		return "vehicle_fitments"
	case retrieval.FieldFitmentYearFrom:
		return "vehicle_fitments"
	case retrieval.FieldFitmentYearTo:
		return "vehicle_fitments"
	case retrieval.FieldCrossReferences:
		return "cross_references"
	case retrieval.FieldOEMReferences:
		return "oem_references"
	case retrieval.FieldSupersededBy:
		return "superseded_by"
	case retrieval.FieldPosition:
		return "position"
	default:
		return field
	}
}

func isArrayField(field string) bool {
	switch field {
	case retrieval.FieldCrossReferences, retrieval.FieldOEMReferences, retrieval.FieldSupersededBy:
		return true
	default:
		return false
	}
}

func (b *sqlBuilder) walkTerm(t retrieval.TermQuery) string {
	switch t.Field {
	case retrieval.FieldFitmentMake:
		return fmt.Sprintf("vehicle_fitments @> %s::jsonb", b.param(fmt.Sprintf(`[{"make": %q}]`, t.Value)))
	case retrieval.FieldCrossReferences, retrieval.FieldOEMReferences, retrieval.FieldSupersededBy:
		return fmt.Sprintf("%s @> ARRAY[%s]::text[]", column(t.Field), b.param(t.Value))
	default:
		return fmt.Sprintf("%s = %s", column(t.Field), b.param(t.Value))
	}
}

func (b *sqlBuilder) walkTerms(t retrieval.TermsQuery) string {
	if isArrayField(t.Field) {
		return fmt.Sprintf("%s && %s::text[]", column(t.Field), b.param(t.Values))
	}
	return fmt.Sprintf("%s = ANY(%s::text[])", column(t.Field), b.param(t.Values))
}

func (b *sqlBuilder) walkPrefix(p retrieval.PrefixQuery) string {
	return fmt.Sprintf("%s LIKE %s", column(p.Field), b.param(p.Value+"%"))
}

func (b *sqlBuilder) walkFuzzy(f retrieval.FuzzyQuery) string {
	return fmt.Sprintf("similarity(%s, %s) > 0.3", column(f.Field), b.param(f.Value))
}

func (b *sqlBuilder) walkMatch(m retrieval.MatchQuery) string {
	b.rankTerm = append(b.rankTerm, m.Value)
	return fmt.Sprintf("%s ILIKE %s", column(m.Field), b.param("%"+m.Value+"%"))
}

func (b *sqlBuilder) walkMultiMatch(m retrieval.MultiMatchQuery) string {
	b.rankTerm = append(b.rankTerm, m.Value)
	var clauses []string
	for _, f := range m.Fields {
		if f == retrieval.FieldDescription || f == retrieval.FieldSpecifications {
			clauses = append(clauses, fmt.Sprintf("search_vector @@ plainto_tsquery('simple', %s)", b.param(m.Value)))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", column(f), b.param("%"+m.Value+"%")))
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

func (b *sqlBuilder) walkRange(r retrieval.RangeQuery) string {
	switch r.Field {
	case retrieval.FieldFitmentYearFrom:
		if r.Lte != nil {
			return fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements(vehicle_fitments) f WHERE (f->>'yearFrom')::int <= %s)", b.param(*r.Lte))
		}
	case retrieval.FieldFitmentYearTo:
		if r.Gte != nil {
			return fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements(vehicle_fitments) f WHERE (f->>'yearTo')::int >= %s)", b.param(*r.Gte))
		}
	}
	return "TRUE"
}
