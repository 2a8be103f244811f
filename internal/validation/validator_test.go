package validation

import (
	"testing"

	"partsearch/internal/model"
)

func TestValidate_LenientFixesClosestBrand(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Brand: []string{"boschh"}}

	result := Validate(intent, Lenient)

	if len(result.Intent.Brand) != 1 || result.Intent.Brand[0] != "Bosch" {
		t.Errorf("expected brand to be fixed to %q, got %v", "Bosch", result.Intent.Brand)
	}
}

func TestValidate_LenientFixesClosestCategory(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Category: "brake pa"}

	result := Validate(intent, Lenient)

	if result.Intent.Category == "brake pa" {
		t.Errorf("expected the category to be fixed to a known vocabulary entry, got %q", result.Intent.Category)
	}
}

func TestValidate_LenientFixesClosestPosition(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Position: []model.Position{"fronts"}}

	result := Validate(intent, Lenient)

	if len(result.Intent.Position) != 1 || result.Intent.Position[0] != model.PositionFront {
		t.Errorf("expected position to be fixed to %q, got %v", model.PositionFront, result.Intent.Position)
	}
}

func TestValidate_LenientDropsUnfixablePosition(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Position: []model.Position{"sideways"}}

	result := Validate(intent, Lenient)

	if len(result.Intent.Position) != 0 {
		t.Errorf("expected an unfixable position to be dropped, got %v", result.Intent.Position)
	}
}

func TestValidate_StrictRejectsUnknownPosition(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Position: []model.Position{"sideways"}}

	result := Validate(intent, Strict)

	if result.Valid {
		t.Error("expected strict mode to reject an unknown position")
	}
}

func TestValidate_KnownPositionPassesThroughUnchanged(t *testing.T) {
	intent := model.Intent{SearchType: model.SearchTypeGeneral, Position: []model.Position{model.PositionRear, model.PositionRear}}

	result := Validate(intent, Lenient)

	if len(result.Intent.Position) != 1 || result.Intent.Position[0] != model.PositionRear {
		t.Errorf("expected a known, deduplicated position list, got %v", result.Intent.Position)
	}
}
