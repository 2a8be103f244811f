package parsing

import (
	"regexp"
	"strconv"
	"time"

	"partsearch/internal/model"
	"partsearch/internal/vocab"
)

var yearRegex = regexp.MustCompile(`\b(19[89]\d|20[0-2]\d)\b`)

// Result is the token parser's output (spec §4.1, §4.3's "token"
// branch). Confidence and SearchType are derived before returning.
type Result struct {
	Intent model.Intent
}

// Parse runs the full deterministic detector ladder against a raw
// query and returns an Intent with SearchType and Confidence filled in.
// It returns ErrInvalidQuery if the query is empty after normalization.
func Parse(raw string) (Result, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return Result{}, ErrInvalidQuery
	}

	intent := model.Intent{}
	var partNumberConf, brandConf, categoryConf, vehicleConf float64

	if pn, ok := DetectPartNumber(raw); ok {
		intent.PartNumber = pn.Value
		partNumberConf = pn.Confidence
	}

	if brand, ok := vocab.MatchBrand(normalized); ok {
		intent.Brand = append(intent.Brand, brand)
		brandConf = 0.85
	}

	if cat, longMatch, ok := vocab.MatchCategory(normalized); ok {
		intent.Category = cat
		if longMatch {
			categoryConf = 0.9
		} else {
			categoryConf = 0.7
		}
	}

	if mk, ok := vocab.MatchVehicleMake(normalized); ok {
		intent.VehicleMake = mk
		vehicleConf += 0.3
		if mdl, ok := vocab.MatchModel(mk, normalized); ok {
			intent.VehicleModel = mdl
			vehicleConf += 0.3
		}
	}

	currentYear := time.Now().Year()
	if m := yearRegex.FindString(normalized); m != "" {
		if y, err := strconv.Atoi(m); err == nil && y >= 1980 && y <= currentYear+1 {
			intent.VehicleYear = y
			vehicleConf += 0.3
		}
	}

	intent.Position = vocab.MatchPositions(normalized)

	size := ExtractSize(raw)
	intent.EngineCode = size.EngineCode

	intent.Brand = model.DedupStrings(intent.Brand)
	intent.Position = model.DedupPositions(intent.Position)

	confidence := 0.2 +
		partNumberConf*0.4 +
		boolContribution(brandConf > 0, 0.15) +
		categoryConf*0.2 +
		vehicleConf*0.15
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	intent.Confidence = confidence

	intent.SearchType = deriveSearchType(intent, partNumberConf)

	return Result{Intent: intent}, nil
}

func boolContribution(b bool, weight float64) float64 {
	if b {
		return weight
	}
	return 0
}

// deriveSearchType implements the priority ladder from spec §4.1: a
// high-confidence part number wins outright; otherwise vehicle+category
// implies fitment, brand+category implies catalog, else general.
func deriveSearchType(intent model.Intent, partNumberConf float64) model.SearchType {
	switch {
	case intent.HasPartNumber() && partNumberConf >= 0.7:
		return model.SearchTypePartNumber
	case intent.HasVehicle() && intent.Category != "":
		return model.SearchTypeFitment
	case len(intent.Brand) > 0 && intent.Category != "":
		return model.SearchTypeCatalog
	default:
		return model.SearchTypeGeneral
	}
}
