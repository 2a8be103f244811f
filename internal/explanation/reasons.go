package explanation

import (
	"sort"
	"strings"

	"partsearch/internal/model"
	"partsearch/internal/parsing"
)

// Weight is the tag attached to a ResultReason (spec §4.7).
type Weight string

const (
	WeightHigh   Weight = "high"
	WeightMedium Weight = "medium"
	WeightLow    Weight = "low"
)

type scoredReason struct {
	text   string
	weight Weight
	score  float64
}

// Reasons returns the top-3 reasons (by weight) a candidate was
// returned, drawn from its feature values (spec §4.7).
func Reasons(intent model.Intent, c model.Candidate) []model.ResultReason {
	var candidates []scoredReason

	if intent.PartNumber != "" {
		want := parsing.NormalizePartNumber(intent.PartNumber)
		have := parsing.NormalizePartNumber(c.Source.PartNumberNormalized)
		switch {
		case want != "" && want == have:
			candidates = append(candidates, scoredReason{"Exact part number match", WeightHigh, 1.0})
		case c.Features.PartNumberMatch > 0:
			candidates = append(candidates, scoredReason{"Partial part number match", WeightMedium, c.Features.PartNumberMatch})
		}
	}

	if c.Features.BrandMatch >= 0.8 {
		candidates = append(candidates, scoredReason{"Matches requested brand", WeightMedium, c.Features.BrandMatch})
	}
	if c.Features.CategoryMatch >= 0.8 {
		candidates = append(candidates, scoredReason{"Matches requested category", WeightMedium, c.Features.CategoryMatch})
	}
	if c.Features.VehicleFitment >= 0.4 {
		candidates = append(candidates, scoredReason{"Fits your vehicle", WeightHigh, c.Features.VehicleFitment})
	}
	if intent.CrossReference != "" && containsFold(c.Source.CrossReferences, intent.CrossReference) {
		candidates = append(candidates, scoredReason{"Cross-referenced to your search", WeightMedium, 0.9})
	}
	if c.QualityScore >= 0.7 {
		candidates = append(candidates, scoredReason{"High-quality listing", WeightLow, c.QualityScore})
	}
	if c.Source.InStock || c.Source.Stock > 0 {
		candidates = append(candidates, scoredReason{"In stock", WeightLow, 0.3})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	out := make([]model.ResultReason, 0, len(candidates))
	for _, r := range candidates {
		out = append(out, model.ResultReason{Text: r.text, Weight: string(r.weight)})
	}
	return out
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
