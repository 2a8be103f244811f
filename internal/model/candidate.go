package model

import "time"

// VehicleFitment describes a vehicle/year range a part is compatible with.
type VehicleFitment struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	YearFrom int    `json:"yearFrom"`
	YearTo   int    `json:"yearTo"`
}

// PartSource is the subset of fields the pipeline reads from an opaque
// text-index record. Unknown fields are not modeled — the pipeline
// never needs them, and the response's _source field carries only
// this modeled subset.
type PartSource struct {
	PartNumber           string           `json:"partNumber"`
	PartNumberNormalized string           `json:"partNumberNormalized"`
	Description          string           `json:"description"`
	Brand                string           `json:"brand"`
	Category             string           `json:"category"`
	Price                float64          `json:"price"`
	Prices               []float64        `json:"prices,omitempty"`
	Stock                int              `json:"stock"`
	InStock              bool             `json:"inStock"`
	ImageURL             string           `json:"imageUrl,omitempty"`
	Images               []string         `json:"images,omitempty"`
	Specifications       map[string]any   `json:"specifications,omitempty"`
	VehicleFitments      []VehicleFitment `json:"vehicleFitments,omitempty"`
	CrossReferences      []string         `json:"crossReferences,omitempty"`
	OEMReferences        []string         `json:"oemReferences,omitempty"`
	SupersededBy         []string         `json:"supersededBy,omitempty"`
	EngineCodes          []string         `json:"engineCodes,omitempty"`
	Position             string           `json:"position,omitempty"`
	UpdatedAt            time.Time        `json:"updatedAt,omitempty"`
}

// Features holds the Stage 4 per-candidate numeric feature vector, all
// values normalized to [0, 1].
type Features struct {
	ESScore          float64 `json:"esScore"`
	PartNumberMatch  float64 `json:"partNumberMatch"`
	CategoryMatch    float64 `json:"categoryMatch"`
	BrandMatch       float64 `json:"brandMatch"`
	VehicleFitment   float64 `json:"vehicleFitment"`
	DataCompleteness float64 `json:"dataCompleteness"`
	HasImage         float64 `json:"hasImage"`
	HasStock         float64 `json:"hasStock"`
	ClickRate        float64 `json:"clickRate"`
	PurchaseRate     float64 `json:"purchaseRate"`
	Freshness        float64 `json:"freshness"`
}

// SoftFactor records one soft-scoring contribution for audit (spec §4.5).
type SoftFactor struct {
	Name  string  `json:"name"`
	Bonus float64 `json:"bonus"`
}

// Candidate is one retrieved record, mutated in place by Stage 3 and
// Stage 4 as it flows through the pipeline.
type Candidate struct {
	ID     string     `json:"id"`
	Score  float64    `json:"score"` // text-engine relevance
	Source PartSource `json:"-"`

	Features Features `json:"features"`

	SoftScore    float64      `json:"softScore"`
	SoftFactors  []SoftFactor `json:"softFactors,omitempty"`
	QualityScore float64      `json:"qualityScore"`

	Rank      int     `json:"rank"`
	RankScore float64 `json:"rankScore"`
}
