package explanation

import (
	"context"
	"strings"

	"partsearch/internal/model"
)

// Result is Stage 5's output (spec §4.7).
type Result struct {
	Success     bool
	Explanation model.Explanation
	Reasons     map[string][]model.ResultReason
	Highlights  map[string][]string
	DurationMs  int64
}

// Explainer is the capability contract the orchestrator depends on.
type Explainer interface {
	Explain(ctx context.Context, intent model.Intent, candidates []model.Candidate) Result
}

// Noop returns an empty explanation. Used when stages.explanation.enabled
// is false.
type Noop struct{}

func (Noop) Explain(_ context.Context, _ model.Intent, _ []model.Candidate) Result {
	return Result{Success: true, Explanation: model.Explanation{}}
}

// Stage is the concrete Explainer.
type Stage struct{}

// NewStage wires a Stage.
func NewStage() *Stage { return &Stage{} }

var _ Explainer = Noop{}
var _ Explainer = (*Stage)(nil)

// Explain runs Stage 5: interpretation, per-result reasons and
// highlights, and suggestions (spec §4.7).
func (s *Stage) Explain(_ context.Context, intent model.Intent, candidates []model.Candidate) Result {
	terms := searchTerms(intent)

	reasons := make(map[string][]model.ResultReason, len(candidates))
	highlights := make(map[string][]string, len(candidates))
	for _, c := range candidates {
		reasons[c.ID] = Reasons(intent, c)
		highlights[c.ID] = Highlights(intent, c, terms)
	}

	explanation := model.Explanation{
		Interpretation: Interpret(intent, len(candidates)),
		Suggestions:    Suggestions(intent, len(candidates)),
	}

	return Result{Success: true, Explanation: explanation, Reasons: reasons, Highlights: highlights}
}

func searchTerms(intent model.Intent) []string {
	var terms []string
	add := func(s string) {
		if s != "" {
			terms = append(terms, s)
		}
	}
	add(intent.PartNumber)
	add(intent.Category)
	add(intent.VehicleMake)
	add(intent.VehicleModel)
	add(intent.EngineCode)
	for _, b := range intent.Brand {
		add(b)
	}
	for _, w := range strings.Fields(intent.VehicleModel) {
		add(w)
	}
	return terms
}
