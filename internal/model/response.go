package model

// Understanding is the Stage 1 summary surfaced in the response envelope.
type Understanding struct {
	Intent     Intent     `json:"intent"`
	Method     string     `json:"method"`
	Confidence float64    `json:"confidence"`
	SearchType SearchType `json:"searchType"`
}

// Suggestion is one Stage 5 refinement or cross-sell suggestion.
type Suggestion struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Explanation is the Stage 5 output surfaced in the response envelope.
type Explanation struct {
	Interpretation string       `json:"interpretation"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
}

// ResultReason is one per-result match reason (spec §4.7).
type ResultReason struct {
	Text   string `json:"text"`
	Weight string `json:"weight"` // high | medium | low
}

// Result is one ranked, response-shaped candidate.
type Result struct {
	ID              string           `json:"id"`
	Rank            int              `json:"rank"`
	Score           float64          `json:"score"`
	PartNumber      string           `json:"partNumber"`
	Brand           string           `json:"brand"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	Price           float64          `json:"price"`
	Stock           int              `json:"stock"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	VehicleFitments []VehicleFitment `json:"vehicleFitments,omitempty"`
	CrossReferences []string         `json:"crossReferences,omitempty"`
	OEMReferences   []string         `json:"oemReferences,omitempty"`
	Reasons         []ResultReason   `json:"reasons,omitempty"`
	Highlights      []string         `json:"highlights,omitempty"`
	Source          PartSource       `json:"_source"`
	FeaturesDebug   Features         `json:"_features"`
}

// Pagination describes the page of results returned.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Timing carries per-stage and end-to-end duration in milliseconds.
type Timing struct {
	Total         int64 `json:"total"`
	Understanding int64 `json:"understanding"`
	Retrieval     int64 `json:"retrieval"`
	Filtering     int64 `json:"filtering"`
	Ranking       int64 `json:"ranking"`
	Explanation   int64 `json:"explanation"`
}

// Meta carries request-scoped bookkeeping.
type Meta struct {
	RequestID       string `json:"requestId"`
	ExperimentGroup string `json:"experimentGroup"`
	CacheStatus     string `json:"cacheStatus"` // hit | miss | cache
}

// Response is the full search API envelope (spec §6). Both success and
// failure responses use this same shape.
type Response struct {
	Success       bool          `json:"success"`
	Query         string        `json:"query"`
	Understanding Understanding `json:"understanding,omitzero"`
	Explanation   Explanation   `json:"explanation,omitzero"`
	Results       []Result      `json:"results"`
	Pagination    Pagination    `json:"pagination"`
	Timing        Timing        `json:"timing,omitzero"`
	Meta          Meta          `json:"meta,omitzero"`

	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// NewFailure builds the structured failure envelope (spec §7): same
// shape, zeroed pagination, empty results, no leaked internals beyond
// the human-readable message and a stable error code.
func NewFailure(query, requestID, errorCode, message string) Response {
	return Response{
		Success:    false,
		Query:      query,
		Results:    []Result{},
		Pagination: Pagination{},
		Meta:       Meta{RequestID: requestID, CacheStatus: "miss"},
		Error:      message,
		ErrorCode:  errorCode,
	}
}
