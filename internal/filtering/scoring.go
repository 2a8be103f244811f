package filtering

import (
	"sort"
	"strings"

	"partsearch/internal/model"
	"partsearch/internal/parsing"
)

// applySoftScoring adds bonuses for non-required Intent matches (spec
// §4.5 step 2), recording an audit trail in SoftFactors.
func applySoftScoring(intent model.Intent, c *model.Candidate) {
	var score float64
	var factors []model.SoftFactor

	add := func(name string, bonus float64) {
		score += bonus
		factors = append(factors, model.SoftFactor{Name: name, Bonus: bonus})
	}

	if intent.VehicleMake != "" && fitmentHasMake(c.Source.VehicleFitments, intent.VehicleMake) {
		add("vehicleMake", 0.2)
	}
	if intent.VehicleModel != "" && fitmentHasModel(c.Source.VehicleFitments, intent.VehicleModel) {
		add("vehicleModel", 0.15)
	}
	if intent.EngineCode != "" && containsEngineCode(c.Source.EngineCodes, intent.EngineCode) {
		add("engineCode", 0.15)
	}
	if intent.PartNumber != "" && parsing.NormalizePartNumber(intent.PartNumber) == parsing.NormalizePartNumber(c.Source.PartNumberNormalized) {
		add("exactPartNumber", 0.3)
	}

	c.SoftScore = score
	c.SoftFactors = factors
}

func fitmentHasMake(fitments []model.VehicleFitment, make string) bool {
	for _, f := range fitments {
		if strings.EqualFold(f.Make, make) {
			return true
		}
	}
	return false
}

func fitmentHasModel(fitments []model.VehicleFitment, modelName string) bool {
	for _, f := range fitments {
		if strings.EqualFold(f.Model, modelName) {
			return true
		}
	}
	return false
}

func containsEngineCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// applyQualityScoring sums the completeness checklist (spec §4.5 step
// 3), capped at 1.
func applyQualityScoring(c *model.Candidate) {
	var score float64
	if c.Source.ImageURL != "" || len(c.Source.Images) > 0 {
		score += 0.1
	}
	if len(c.Source.Description) > 20 {
		score += 0.1
	}
	if len(c.Source.Specifications) > 0 {
		score += 0.15
	}
	if c.Source.Stock > 0 || c.Source.InStock {
		score += 0.2
	}
	if c.Source.Price > 0 {
		score += 0.15
	}
	if len(c.Source.CrossReferences) > 0 {
		score += 0.1
	}
	if len(c.Source.VehicleFitments) > 0 {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	c.QualityScore = score
}

// applyQualityGate drops low-quality candidates once the pool is large
// enough that doing so can't starve the result set (spec §4.5 step 4).
func applyQualityGate(candidates []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.QualityScore < 0.1 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalizedESScore divides the raw text-engine score by 10 and clamps
// to [0, 1] (spec §4.5 step 5).
func normalizedESScore(c model.Candidate) float64 {
	v := c.Score / 10
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func composite(c model.Candidate) float64 {
	return 0.5*normalizedESScore(c) + 0.3*c.SoftScore + 0.2*c.QualityScore
}

// sortByComposite orders candidates by the business-rules composite
// score, descending (spec §4.5 step 5).
func sortByComposite(candidates []model.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return composite(candidates[i]) > composite(candidates[j])
	})
}

// stablePartitionByStock moves in-stock candidates before out-of-stock
// ones, preserving relative order within each group.
func stablePartitionByStock(candidates []model.Candidate) {
	inStock := make([]model.Candidate, 0, len(candidates))
	outOfStock := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Source.InStock || c.Source.Stock > 0 {
			inStock = append(inStock, c)
		} else {
			outOfStock = append(outOfStock, c)
		}
	}
	copy(candidates, append(inStock, outOfStock...))
}
