package retrieval

import (
	"encoding/json"

	"partsearch/internal/model"
)

// sourceFromMap decodes a raw adapter hit's source map into the
// documented PartSource subset (spec §3), ignoring unknown fields.
func sourceFromMap(src map[string]any) model.PartSource {
	raw, err := json.Marshal(src)
	if err != nil {
		return model.PartSource{}
	}
	var source model.PartSource
	if err := json.Unmarshal(raw, &source); err != nil {
		return model.PartSource{}
	}
	return source
}

// candidateFromCachedJSON decodes a whole Candidate stored as JSON under
// a part-cache key. Nothing in this repository writes that namespace.
func candidateFromCachedJSON(raw []byte) (model.Candidate, bool) {
	var candidate model.Candidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return model.Candidate{}, false
	}
	return candidate, true
}
