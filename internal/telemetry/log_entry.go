package telemetry

import "time"

// LogEntry is the per-request record for analytics persistence (spec
// §6). The pipeline only defines the contract; persisting it is the
// caller's concern.
type LogEntry struct {
	RequestID       string             `json:"requestId"`
	Timestamp       time.Time          `json:"timestamp"`
	RawQuery        string             `json:"rawQuery"`
	ParsedIntent    any                `json:"parsedIntent"`
	ParseMethod     string             `json:"parseMethod"`
	ParseTimeMs     int64              `json:"parseTimeMs"`
	ParseConfidence float64            `json:"parseConfidence"`
	RetrievalSource string             `json:"retrievalSource"`
	CandidateCount  int                `json:"candidateCount"`
	RetrievalTimeMs int64              `json:"retrievalTimeMs"`
	PreFilterCount  int                `json:"preFilterCount"`
	PostFilterCount int                `json:"postFilterCount"`
	FiltersApplied  []string           `json:"filtersApplied"`
	FilterTimeMs    int64              `json:"filterTimeMs"`
	RankingMethod   string             `json:"rankingMethod"`
	Weights         map[string]float64 `json:"weights"`
	RankTimeMs      int64              `json:"rankTimeMs"`
	ResultCount     int                `json:"resultCount"`
	TopResultID     string             `json:"topResultId"`
	TopResultScore  float64            `json:"topResultScore"`
	TotalTimeMs     int64              `json:"totalTimeMs"`
}
