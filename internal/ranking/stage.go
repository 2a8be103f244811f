// Package ranking implements Stage 4 (spec §4.6): per-candidate
// feature extraction, weighted linear scoring against an experiment
// weight vector, sorting, rank assignment, and an online gradient
// update hook over the active weights.
package ranking

import (
	"context"
	"sort"
	"sync"
	"time"

	"partsearch/internal/engagement"
	"partsearch/internal/model"
)

// Result is Stage 4's output (spec §4.6).
type Result struct {
	Success         bool
	Candidates      []model.Candidate
	ExperimentGroup ExperimentGroup
	Weights         Weights
	DurationMs      int64
}

// Ranker is the capability contract the orchestrator depends on.
type Ranker interface {
	Rank(ctx context.Context, intent model.Intent, candidates []model.Candidate) Result
}

// Noop assigns ranks in arrival order without scoring. Used when
// stages.ranking.enabled is false.
type Noop struct{}

func (Noop) Rank(_ context.Context, _ model.Intent, candidates []model.Candidate) Result {
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return Result{Success: true, Candidates: candidates, ExperimentGroup: GroupControl, Weights: DefaultWeights()}
}

// Config tunes Stage instance behavior (spec §4.6).
type Config struct {
	ExperimentGroup ExperimentGroup
	Engagement      engagement.Provider
}

// Stage is the concrete Ranker. Weights mutate over the Stage's
// lifetime via the gradient-update hook, so access is guarded by mu
// (spec §5: shared cross-request state mutated under a short critical
// section).
type Stage struct {
	mu         sync.RWMutex
	weights    Weights
	group      ExperimentGroup
	engagement engagement.Provider
}

// NewStage wires a Stage with the named experiment group's starting
// weight vector.
func NewStage(cfg Config) *Stage {
	group := cfg.ExperimentGroup
	if group == "" {
		group = GroupControl
	}
	return &Stage{weights: WeightsFor(group), group: group, engagement: cfg.Engagement}
}

var _ Ranker = Noop{}
var _ Ranker = (*Stage)(nil)

// Rank runs feature extraction, scoring, sort, and rank assignment
// (spec §4.6).
func (s *Stage) Rank(_ context.Context, intent model.Intent, candidates []model.Candidate) Result {
	weights := s.currentWeights()

	maxScore := 0.0
	for _, c := range candidates {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	now := time.Now()
	for i := range candidates {
		candidates[i].Features = extractFeatures(intent, candidates[i], maxScore, s.engagement, now)
		candidates[i].RankScore = score(weights, candidates[i])
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RankScore > candidates[j].RankScore
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	return Result{Success: true, Candidates: candidates, ExperimentGroup: s.group, Weights: weights}
}

// score computes the final rankScore: the weighted feature sum plus
// the soft/quality bonuses carried over from Stage 3 (spec §4.6).
func score(w Weights, c model.Candidate) float64 {
	f := c.Features
	return w.ESScore*f.ESScore +
		w.PartNumberMatch*f.PartNumberMatch +
		w.CategoryMatch*f.CategoryMatch +
		w.BrandMatch*f.BrandMatch +
		w.VehicleFitment*f.VehicleFitment +
		w.DataCompleteness*f.DataCompleteness +
		w.HasImage*f.HasImage +
		w.HasStock*f.HasStock +
		w.ClickRate*f.ClickRate +
		w.PurchaseRate*f.PurchaseRate +
		w.Freshness*f.Freshness +
		0.1*c.SoftScore +
		0.05*c.QualityScore
}

func (s *Stage) currentWeights() Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// GradientSignal is the online-update input (spec §4.6).
type GradientSignal struct {
	Feature   string
	Direction float64 // +1 or -1
	Magnitude float64
}

const learningRate = 0.01

// ApplyGradient nudges one feature's weight and renormalizes the
// vector to sum to 1 (spec §4.6).
func (s *Stage) ApplyGradient(signal GradientSignal) Weights {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := featureValue(s.weights, signal.Feature)
	updated := clampWeight(current + signal.Direction*signal.Magnitude*learningRate)
	s.weights = renormalize(withFeature(s.weights, signal.Feature, updated))
	return s.weights
}

// Weights returns a copy of the current active weight vector, for
// logging and checkpointing.
func (s *Stage) Weights() Weights {
	return s.currentWeights()
}

// FeatureContribution is one entry in an explainability report (spec
// §4.6).
type FeatureContribution struct {
	Feature string
	Value   float64
	Share   float64 // percentage of total rankScore
}

// Explain returns the top-3 feature contributions by weighted value,
// expressed as a percentage share of the candidate's rankScore.
func Explain(w Weights, c model.Candidate) []FeatureContribution {
	contributions := weightedContributions(w, c.Features)
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].Value > contributions[j].Value
	})
	if len(contributions) > 3 {
		contributions = contributions[:3]
	}
	if c.RankScore > 0 {
		for i := range contributions {
			contributions[i].Share = contributions[i].Value / c.RankScore * 100
		}
	}
	return contributions
}

func weightedContributions(w Weights, f model.Features) []FeatureContribution {
	return []FeatureContribution{
		{Feature: "esScore", Value: w.ESScore * f.ESScore},
		{Feature: "partNumberMatch", Value: w.PartNumberMatch * f.PartNumberMatch},
		{Feature: "categoryMatch", Value: w.CategoryMatch * f.CategoryMatch},
		{Feature: "brandMatch", Value: w.BrandMatch * f.BrandMatch},
		{Feature: "vehicleFitment", Value: w.VehicleFitment * f.VehicleFitment},
		{Feature: "dataCompleteness", Value: w.DataCompleteness * f.DataCompleteness},
		{Feature: "hasImage", Value: w.HasImage * f.HasImage},
		{Feature: "hasStock", Value: w.HasStock * f.HasStock},
		{Feature: "clickRate", Value: w.ClickRate * f.ClickRate},
		{Feature: "purchaseRate", Value: w.PurchaseRate * f.PurchaseRate},
		{Feature: "freshness", Value: w.Freshness * f.Freshness},
	}
}
