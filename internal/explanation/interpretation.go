// Package explanation implements Stage 5 (spec §4.7): an
// interpretation sentence, per-result reasons and highlights, and
// query-refinement suggestions. No external calls are required.
package explanation

import (
	"fmt"

	"partsearch/internal/model"
)

// Interpret renders the interpretation sentence for the searchType,
// filled from the Intent (spec §4.7).
func Interpret(intent model.Intent, resultCount int) string {
	switch intent.SearchType {
	case model.SearchTypePartNumber:
		return fmt.Sprintf("Showing results for part number %q.", intent.PartNumber)
	case model.SearchTypeCrossReference:
		return fmt.Sprintf("Showing parts cross-referenced to %q.", intent.CrossReference)
	case model.SearchTypeFitment:
		return fmt.Sprintf("Showing %s for %s", categoryOrParts(intent), vehicleDescription(intent))
	case model.SearchTypeCatalog:
		return fmt.Sprintf("Showing %s %s", brandList(intent), categoryOrParts(intent))
	default:
		return fmt.Sprintf("Found %d results for your search.", resultCount)
	}
}

func categoryOrParts(intent model.Intent) string {
	if intent.Category != "" {
		return intent.Category
	}
	return "parts"
}

func vehicleDescription(intent model.Intent) string {
	desc := intent.VehicleMake
	if intent.VehicleModel != "" {
		desc += " " + intent.VehicleModel
	}
	if intent.VehicleYear != 0 {
		desc = fmt.Sprintf("%d %s", intent.VehicleYear, desc)
	}
	return desc
}

func brandList(intent model.Intent) string {
	if len(intent.Brand) == 0 {
		return ""
	}
	if len(intent.Brand) == 1 {
		return intent.Brand[0]
	}
	out := intent.Brand[0]
	for _, b := range intent.Brand[1:] {
		out += "/" + b
	}
	return out
}
