package ranking

import (
	"strings"
	"time"

	"partsearch/internal/engagement"
	"partsearch/internal/model"
	"partsearch/internal/parsing"
)

// extractFeatures computes the per-candidate feature vector (spec
// §4.6). maxScore is the maximum raw text-engine score across the
// candidate set, used to normalize esScore.
func extractFeatures(intent model.Intent, c model.Candidate, maxScore float64, engagementProvider engagement.Provider, now time.Time) model.Features {
	return model.Features{
		ESScore:          esScore(c, maxScore),
		PartNumberMatch:  partNumberMatch(intent, c),
		CategoryMatch:    categoryMatch(intent, c),
		BrandMatch:       brandMatch(intent, c),
		VehicleFitment:   vehicleFitmentScore(intent, c),
		DataCompleteness: dataCompleteness(c),
		HasImage:         hasImageScore(c),
		HasStock:         hasStockScore(c),
		ClickRate:        engagementStats(engagementProvider, c.ID).ClickRate,
		PurchaseRate:     engagementStats(engagementProvider, c.ID).PurchaseRate,
		Freshness:        freshness(c, now),
	}
}

func engagementStats(p engagement.Provider, id string) engagement.Stats {
	if p == nil {
		return engagement.Stats{ClickRate: 0.5, PurchaseRate: 0.5}
	}
	return p.GetEngagement(id)
}

func esScore(c model.Candidate, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	v := c.Score / maxScore
	if v > 1 {
		return 1
	}
	return v
}

func partNumberMatch(intent model.Intent, c model.Candidate) float64 {
	if intent.PartNumber == "" {
		return 0
	}
	want := parsing.NormalizePartNumber(intent.PartNumber)
	have := parsing.NormalizePartNumber(c.Source.PartNumberNormalized)
	if have == "" {
		have = parsing.NormalizePartNumber(c.Source.PartNumber)
	}
	if want == "" || have == "" {
		return 0
	}
	if want == have {
		return 1.0
	}
	if strings.HasPrefix(have, want) || strings.HasPrefix(want, have) {
		shorter, longer := want, have
		if len(have) < len(want) {
			shorter, longer = have, want
		}
		return float64(len(shorter)) / float64(len(longer))
	}
	if strings.Contains(have, want) || strings.Contains(want, have) {
		return 0.5
	}
	return 0
}

func categoryMatch(intent model.Intent, c model.Candidate) float64 {
	if intent.Category == "" {
		return 0.5
	}
	if c.Source.Category == "" {
		return 0
	}
	want, have := strings.ToLower(intent.Category), strings.ToLower(c.Source.Category)
	if want == have {
		return 1.0
	}
	if strings.Contains(have, want) || strings.Contains(want, have) {
		return 0.8
	}
	return 0
}

func brandMatch(intent model.Intent, c model.Candidate) float64 {
	if len(intent.Brand) == 0 {
		return 0.5
	}
	have := strings.ToLower(c.Source.Brand)
	if have == "" {
		return 0
	}
	best := 0.0
	for _, b := range intent.Brand {
		want := strings.ToLower(b)
		if want == have {
			return 1.0
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			if best < 0.8 {
				best = 0.8
			}
		}
	}
	return best
}

func vehicleFitmentScore(intent model.Intent, c model.Candidate) float64 {
	if len(c.Source.VehicleFitments) == 0 {
		return 0.3
	}
	if !intent.HasVehicle() {
		return 0.3
	}
	var best float64
	for _, f := range c.Source.VehicleFitments {
		score := 0.0
		if intent.VehicleMake != "" && strings.EqualFold(f.Make, intent.VehicleMake) {
			score += 0.4
		}
		if intent.VehicleModel != "" && strings.EqualFold(f.Model, intent.VehicleModel) {
			score += 0.3
		}
		if intent.VehicleYear != 0 {
			lowerOK := f.YearFrom == 0 || intent.VehicleYear >= f.YearFrom
			upperOK := f.YearTo == 0 || intent.VehicleYear <= f.YearTo
			if lowerOK && upperOK {
				score += 0.3
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// dataCompleteness mirrors the filtering-stage quality checklist with
// independent weighting (spec §4.6).
func dataCompleteness(c model.Candidate) float64 {
	var score float64
	if c.Source.ImageURL != "" || len(c.Source.Images) > 0 {
		score += 0.15
	}
	if len(c.Source.Description) > 20 {
		score += 0.15
	}
	if len(c.Source.Specifications) > 0 {
		score += 0.15
	}
	if c.Source.Stock > 0 || c.Source.InStock {
		score += 0.15
	}
	if c.Source.Price > 0 {
		score += 0.15
	}
	if len(c.Source.CrossReferences) > 0 {
		score += 0.1
	}
	if len(c.Source.VehicleFitments) > 0 {
		score += 0.15
	}
	if score > 1 {
		score = 1
	}
	return score
}

func hasImageScore(c model.Candidate) float64 {
	if c.Source.ImageURL != "" || len(c.Source.Images) > 0 {
		return 1.0
	}
	return 0
}

func hasStockScore(c model.Candidate) float64 {
	if c.Source.Stock > 10 {
		return 1.0
	}
	if c.Source.Stock > 0 {
		return 0.7
	}
	return 0
}

func freshness(c model.Candidate, now time.Time) float64 {
	if c.Source.UpdatedAt.IsZero() {
		return 0.2
	}
	days := now.Sub(c.Source.UpdatedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	v := 1 - days/180*0.8
	if v < 0.2 {
		return 0.2
	}
	return v
}
