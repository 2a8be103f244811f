package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSONObject is returned when no `{...}` substring could be found
// in the model's output.
var ErrNoJSONObject = errors.New("llm output contained no JSON object")

// ErrEmptyIntentGuess is returned when the first parsed JSON object
// looks like a false positive — no Intent-identifying field present
// (spec §9: "guard against nested-object heuristic errors").
var ErrEmptyIntentGuess = errors.New("parsed object had no recognizable intent fields")

const systemPromptTemplate = `You are a parts-search query interpreter. Given a free-text automotive-parts search query, extract a JSON object with this exact shape and nothing else:

{
  "partNumber": string or null,
  "crossReference": string or null,
  "category": string or null,
  "brand": [string],
  "vehicleMake": string or null,
  "vehicleModel": string or null,
  "vehicleYear": number or null,
  "engineCode": string or null,
  "position": [string],
  "searchType": one of "partNumber", "fitment", "catalog", "general", "cross-reference",
  "confidence": number between 0 and 1
}

Respond with JSON only, no prose, no markdown fences.

Query: %s`

// BuildIntentPrompt renders the deterministic system prompt for Intent
// extraction (spec §4.3 step 5).
func BuildIntentPrompt(query string) string {
	return fmt.Sprintf(systemPromptTemplate, query)
}

// IntentJSON is the wire shape the LLM is instructed to emit; it is
// decoded here and converted to model.Intent by the understanding
// package to avoid a dependency cycle.
type IntentJSON struct {
	PartNumber     *string  `json:"partNumber"`
	CrossReference *string  `json:"crossReference"`
	Category       *string  `json:"category"`
	Brand          []string `json:"brand"`
	VehicleMake    *string  `json:"vehicleMake"`
	VehicleModel   *string  `json:"vehicleModel"`
	VehicleYear    *int     `json:"vehicleYear"`
	EngineCode     *string  `json:"engineCode"`
	Position       []string `json:"position"`
	SearchType     string   `json:"searchType"`
	Confidence     float64  `json:"confidence"`
}

// ExtractFirstJSONObject finds the first balanced `{...}` substring in
// raw output and parses it into an IntentJSON, rejecting parses that
// carry none of the Intent-identifying fields (spec §9).
func ExtractFirstJSONObject(raw string) (IntentJSON, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return IntentJSON{}, ErrNoJSONObject
	}

	depth := 0
	end := -1
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return IntentJSON{}, ErrNoJSONObject
	}

	var out IntentJSON
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return IntentJSON{}, fmt.Errorf("decode intent json: %w", err)
	}

	if out.PartNumber == nil && out.Category == nil && len(out.Brand) == 0 && out.VehicleMake == nil {
		return IntentJSON{}, ErrEmptyIntentGuess
	}

	return out, nil
}
