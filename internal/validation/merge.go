package validation

import "partsearch/internal/model"

// MergeIntents applies fill-missing semantics: primary's fields win
// unless empty, in which case the first later intent with a value fills
// it; arrays union-with-dedup across all inputs; confidence takes the
// max (spec §4.2).
func MergeIntents(primary model.Intent, others ...model.Intent) model.Intent {
	out := primary.Clone()

	for _, o := range others {
		if out.PartNumber == "" {
			out.PartNumber = o.PartNumber
		}
		if out.CrossReference == "" {
			out.CrossReference = o.CrossReference
		}
		if out.Category == "" {
			out.Category = o.Category
		}
		if out.VehicleMake == "" {
			out.VehicleMake = o.VehicleMake
		}
		if out.VehicleModel == "" {
			out.VehicleModel = o.VehicleModel
		}
		if out.VehicleYear == 0 {
			out.VehicleYear = o.VehicleYear
		}
		if out.EngineCode == "" {
			out.EngineCode = o.EngineCode
		}
		if out.SearchType == "" {
			out.SearchType = o.SearchType
		}

		out.Brand = append(out.Brand, o.Brand...)
		out.Position = append(out.Position, o.Position...)

		if o.Confidence > out.Confidence {
			out.Confidence = o.Confidence
		}
	}

	out.Brand = model.DedupStrings(out.Brand)
	out.Position = model.DedupPositions(out.Position)
	return out
}

// MergeUnderstanding implements the Stage 1 token/LLM merge precedence
// (spec §4.3 step 6): LLM wins for category, vehicleMake, vehicleModel,
// searchType; token wins for partNumber, vehicleYear; arrays union;
// confidence takes the max.
func MergeUnderstanding(token, llm model.Intent) model.Intent {
	out := token.Clone()

	if llm.Category != "" {
		out.Category = llm.Category
	}
	if llm.VehicleMake != "" {
		out.VehicleMake = llm.VehicleMake
	}
	if llm.VehicleModel != "" {
		out.VehicleModel = llm.VehicleModel
	}
	if llm.SearchType != "" {
		out.SearchType = llm.SearchType
	}
	// partNumber and vehicleYear: token wins, so only fill if token is empty.
	if out.PartNumber == "" {
		out.PartNumber = llm.PartNumber
	}
	if out.VehicleYear == 0 {
		out.VehicleYear = llm.VehicleYear
	}
	if out.CrossReference == "" {
		out.CrossReference = llm.CrossReference
	}
	if out.EngineCode == "" {
		out.EngineCode = llm.EngineCode
	}

	out.Brand = model.DedupStrings(append(out.Brand, llm.Brand...))
	out.Position = model.DedupPositions(append(out.Position, llm.Position...))

	if llm.Confidence > out.Confidence {
		out.Confidence = llm.Confidence
	}

	return out
}
