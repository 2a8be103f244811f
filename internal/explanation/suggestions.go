package explanation

import (
	"fmt"

	"partsearch/internal/model"
	"partsearch/internal/vocab"
)

// Suggestions produces refinement tips and cross-sell proposals (spec
// §4.7).
func Suggestions(intent model.Intent, resultCount int) []model.Suggestion {
	var suggestions []model.Suggestion

	switch {
	case resultCount == 0:
		suggestions = append(suggestions, genericRefinementTips()...)
	case resultCount > 100:
		suggestions = append(suggestions, narrowingSuggestions(intent)...)
	case resultCount >= 20 && resultCount <= 100 && intent.VehicleMake != "" && intent.VehicleYear == 0:
		suggestions = append(suggestions, model.Suggestion{Type: "refine", Text: "Add your vehicle's year for more precise fitment results."})
	}

	if resultCount > 0 {
		suggestions = append(suggestions, crossSellSuggestions(intent.Category)...)
	}

	return suggestions
}

func genericRefinementTips() []model.Suggestion {
	return []model.Suggestion{
		{Type: "tip", Text: "Try searching by part number for an exact match."},
		{Type: "tip", Text: "Check the spelling of the brand or vehicle name."},
		{Type: "tip", Text: "Remove extra words and search with fewer, more specific terms."},
	}
}

func narrowingSuggestions(intent model.Intent) []model.Suggestion {
	var suggestions []model.Suggestion
	if intent.VehicleMake == "" {
		suggestions = append(suggestions, model.Suggestion{Type: "narrow", Text: "Add your vehicle make and model to narrow these results."})
	}
	if len(intent.Brand) == 0 {
		suggestions = append(suggestions, model.Suggestion{Type: "narrow", Text: "Add a brand to narrow these results."})
	}
	if len(intent.Position) == 0 {
		suggestions = append(suggestions, model.Suggestion{Type: "narrow", Text: "Add a position (front, rear, left, right) to narrow these results."})
	}
	return suggestions
}

func crossSellSuggestions(category string) []model.Suggestion {
	related, ok := vocab.CategoryAdjacency[category]
	if !ok {
		return nil
	}
	suggestions := make([]model.Suggestion, 0, len(related))
	for _, r := range related {
		suggestions = append(suggestions, model.Suggestion{
			Type: "cross-sell",
			Text: fmt.Sprintf("Customers who search %q often also need %q.", category, r),
		})
	}
	return suggestions
}
