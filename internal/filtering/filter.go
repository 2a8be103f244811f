// Package filtering implements Stage 3 (spec §4.5): hard filters, soft
// scoring, quality scoring, a quality gate, and a composite sort over
// the candidates Stage 2 retrieved.
package filtering

import (
	"context"
	"strings"

	"partsearch/internal/model"
)

const maxResults = 200

// Result is Stage 3's output (spec §4.5).
type Result struct {
	Success        bool
	Candidates     []model.Candidate
	PreFilterCount int
	FiltersApplied []string
	DurationMs     int64
}

// Filterer is the capability contract the orchestrator depends on.
type Filterer interface {
	Filter(ctx context.Context, intent model.Intent, candidates []model.Candidate) Result
}

// Noop passes candidates through unchanged. Used when
// stages.filtering.enabled is false.
type Noop struct{}

func (Noop) Filter(_ context.Context, _ model.Intent, candidates []model.Candidate) Result {
	return Result{Success: true, Candidates: candidates, PreFilterCount: len(candidates)}
}

// Config tunes Stage instance behavior (spec §4.5).
type Config struct {
	StockPriority bool
}

// Stage is the concrete Filterer.
type Stage struct {
	cfg Config
}

// NewStage wires a Stage.
func NewStage(cfg Config) *Stage {
	return &Stage{cfg: cfg}
}

var _ Filterer = Noop{}
var _ Filterer = (*Stage)(nil)

// Filter runs the five passes in order (spec §4.5).
func (s *Stage) Filter(_ context.Context, intent model.Intent, candidates []model.Candidate) Result {
	preCount := len(candidates)
	var applied []string

	filtered, hardApplied := applyHardFilters(intent, candidates)
	applied = append(applied, hardApplied...)

	for i := range filtered {
		applySoftScoring(intent, &filtered[i])
	}
	applied = append(applied, "softScoring")

	for i := range filtered {
		applyQualityScoring(&filtered[i])
	}
	applied = append(applied, "qualityScoring")

	if len(filtered) > 10 {
		filtered = applyQualityGate(filtered)
		applied = append(applied, "qualityGate")
	}

	sortByComposite(filtered)
	applied = append(applied, "compositeSort")

	if s.cfg.StockPriority {
		stablePartitionByStock(filtered)
		applied = append(applied, "stockPriority")
	}

	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}

	return Result{
		Success:        true,
		Candidates:     filtered,
		PreFilterCount: preCount,
		FiltersApplied: applied,
	}
}

// applyHardFilters is the conjunctive pass (spec §4.5 step 1): brand,
// category, vehicle-year range, position. Any failed check excludes
// the candidate.
func applyHardFilters(intent model.Intent, candidates []model.Candidate) ([]model.Candidate, []string) {
	var applied []string
	if len(intent.Brand) > 0 {
		applied = append(applied, "brand")
	}
	if intent.Category != "" {
		applied = append(applied, "category")
	}
	if intent.VehicleYear != 0 {
		applied = append(applied, "vehicleYear")
	}
	if len(intent.Position) > 0 {
		applied = append(applied, "position")
	}

	out := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if passesHardFilters(intent, c) {
			out = append(out, c)
		}
	}
	return out, applied
}

func passesHardFilters(intent model.Intent, c model.Candidate) bool {
	if len(intent.Brand) > 0 && !anySubstringMatch(intent.Brand, c.Source.Brand) {
		return false
	}
	if intent.Category != "" && !substringEitherWay(intent.Category, c.Source.Category) {
		return false
	}
	if intent.VehicleYear != 0 && len(c.Source.VehicleFitments) > 0 && !yearInAnyFitment(intent.VehicleYear, c.Source.VehicleFitments) {
		return false
	}
	if len(intent.Position) > 0 && c.Source.Position != "" && !anyPositionMatch(intent.Position, c.Source.Position) {
		return false
	}
	return true
}

func substringEitherWay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func anySubstringMatch(candidates []string, value string) bool {
	for _, c := range candidates {
		if substringEitherWay(c, value) {
			return true
		}
	}
	return false
}

func anyPositionMatch(positions []model.Position, value string) bool {
	value = strings.ToLower(value)
	for _, p := range positions {
		if strings.Contains(value, strings.ToLower(string(p))) {
			return true
		}
	}
	return false
}

func yearInAnyFitment(year int, fitments []model.VehicleFitment) bool {
	for _, f := range fitments {
		if f.YearFrom != 0 && year < f.YearFrom {
			continue
		}
		if f.YearTo != 0 && year > f.YearTo {
			continue
		}
		return true
	}
	return false
}
