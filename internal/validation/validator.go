// Package validation implements the Stage 1 schema validator (spec
// §4.2): strict and lenient configurations, type coercion, enum and
// pattern checks against the closed vocabularies, and intent merging.
package validation

import (
	"strings"
	"time"

	"partsearch/internal/model"
	"partsearch/internal/vocab"
)

// Mode selects strict or lenient validation behavior.
type Mode int

const (
	// Strict drops unknown fields and rejects invalid ones outright.
	Strict Mode = iota
	// Lenient keeps unknown fields with warnings and attempts fixes.
	Lenient
)

// Result is the schema validator's output (spec §4.2).
type Result struct {
	Valid    bool
	Intent   model.Intent
	Errors   []string
	Warnings []string
}

const maxBrands = 10
const maxPositions = 10

// Validate checks intent's enumerated fields against the closed
// vocabularies, coerces and caps arrays, and — in lenient mode —
// attempts a closest-vocabulary-match fix for brand, category, and
// position before giving up.
func Validate(intent model.Intent, mode Mode) Result {
	r := Result{Intent: intent.Clone(), Valid: true}

	if r.Intent.VehicleYear != 0 {
		year := r.Intent.VehicleYear
		currentYear := time.Now().Year()
		if year < 1900 || year > currentYear+2 {
			if mode == Lenient {
				r.Warnings = append(r.Warnings, "vehicleYear out of range, dropped")
				r.Intent.VehicleYear = 0
			} else {
				r.Errors = append(r.Errors, "vehicleYear out of range")
				r.Valid = false
			}
		}
	}

	if r.Intent.Category != "" && !vocab.IsCategory(r.Intent.Category) {
		if mode == Lenient {
			if fixed, ok := closestCategory(r.Intent.Category); ok {
				r.Warnings = append(r.Warnings, "category fixed to closest vocabulary match: "+fixed)
				r.Intent.Category = fixed
			} else {
				r.Warnings = append(r.Warnings, "unknown category dropped: "+r.Intent.Category)
				r.Intent.Category = ""
			}
		} else {
			r.Errors = append(r.Errors, "unknown category: "+r.Intent.Category)
			r.Valid = false
		}
	}

	var fixedBrands []string
	for _, b := range r.Intent.Brand {
		if vocab.IsBrand(b) {
			fixedBrands = append(fixedBrands, b)
			continue
		}
		if mode == Lenient {
			if fixed, ok := closestBrand(b); ok {
				r.Warnings = append(r.Warnings, "brand fixed to closest vocabulary match: "+fixed)
				fixedBrands = append(fixedBrands, fixed)
			} else {
				r.Warnings = append(r.Warnings, "unknown brand dropped: "+b)
			}
		} else {
			r.Errors = append(r.Errors, "unknown brand: "+b)
			r.Valid = false
		}
	}
	if len(fixedBrands) > maxBrands {
		r.Warnings = append(r.Warnings, "brand list truncated")
		fixedBrands = fixedBrands[:maxBrands]
	}
	r.Intent.Brand = model.DedupStrings(fixedBrands)

	var fixedPositions []model.Position
	for _, p := range r.Intent.Position {
		if vocab.IsPosition(p) {
			fixedPositions = append(fixedPositions, p)
			continue
		}
		if mode == Lenient {
			if fixed, ok := closestPosition(p); ok {
				r.Warnings = append(r.Warnings, "position fixed to closest vocabulary match: "+string(fixed))
				fixedPositions = append(fixedPositions, fixed)
			} else {
				r.Warnings = append(r.Warnings, "unknown position dropped: "+string(p))
			}
		} else {
			r.Errors = append(r.Errors, "unknown position: "+string(p))
			r.Valid = false
		}
	}
	if len(fixedPositions) > maxPositions {
		r.Warnings = append(r.Warnings, "position list truncated")
		fixedPositions = fixedPositions[:maxPositions]
	}
	r.Intent.Position = model.DedupPositions(fixedPositions)

	if r.Intent.Confidence < 0 || r.Intent.Confidence > 1 {
		r.Warnings = append(r.Warnings, "confidence clamped")
		r.Intent.Confidence = clamp01(r.Intent.Confidence)
	}

	if !isValidSearchType(r.Intent.SearchType) {
		if mode == Lenient {
			r.Warnings = append(r.Warnings, "unknown searchType defaulted to general")
			r.Intent.SearchType = model.SearchTypeGeneral
		} else {
			r.Errors = append(r.Errors, "unknown searchType: "+string(r.Intent.SearchType))
			r.Valid = false
		}
	}

	if r.Intent.HasPartNumber() && r.Intent.Confidence < 0.7 {
		r.Warnings = append(r.Warnings, "partNumber confidence below floor, raised")
		r.Intent.Confidence = 0.7
	}

	if r.Intent.SearchType == model.SearchTypeFitment && r.Intent.VehicleMake == "" {
		if mode == Lenient {
			r.Warnings = append(r.Warnings, "fitment searchType without vehicleMake, downgraded to general")
			r.Intent.SearchType = model.SearchTypeGeneral
		} else {
			r.Errors = append(r.Errors, "fitment searchType requires vehicleMake")
			r.Valid = false
		}
	}

	if len(r.Errors) > 0 {
		r.Valid = false
	}
	return r
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isValidSearchType(t model.SearchType) bool {
	switch t {
	case model.SearchTypePartNumber, model.SearchTypeFitment, model.SearchTypeCatalog,
		model.SearchTypeGeneral, model.SearchTypeCrossReference:
		return true
	default:
		return false
	}
}

// closestCategory finds a known category whose name substring-contains,
// or is contained by, the candidate (spec §4.2 "substring containment
// either way").
func closestCategory(candidate string) (string, bool) {
	low := strings.ToLower(candidate)
	for _, c := range vocab.Categories {
		cl := strings.ToLower(c.Name)
		if strings.Contains(cl, low) || strings.Contains(low, cl) {
			return c.Name, true
		}
	}
	return "", false
}

func closestBrand(candidate string) (string, bool) {
	low := strings.ToLower(candidate)
	for _, b := range vocab.Brands {
		bl := strings.ToLower(b)
		if strings.Contains(bl, low) || strings.Contains(low, bl) {
			return b, true
		}
	}
	return "", false
}

func closestPosition(candidate model.Position) (model.Position, bool) {
	low := strings.ToLower(string(candidate))
	for _, p := range vocab.Positions {
		pl := strings.ToLower(string(p))
		if strings.Contains(pl, low) || strings.Contains(low, pl) {
			return p, true
		}
	}
	return "", false
}
