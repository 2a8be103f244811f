// Package understanding implements Stage 1 — Query Understanding (spec
// §4.3): normalize, consult cache, run the token parser, optionally
// enhance with an LLM behind a circuit breaker, merge, and validate.
package understanding

import (
	"context"

	"partsearch/internal/model"
)

// Method is the value surfaced in the response's understanding.method
// field (spec §4.3).
type Method string

const (
	MethodCache         Method = "cache"
	MethodToken         Method = "token"
	MethodHybrid        Method = "hybrid"
	MethodTokenFallback Method = "token-fallback"
	MethodNone          Method = "none"
)

// Result is Stage 1's output (spec §4.3).
type Result struct {
	Success    bool
	Intent     model.Intent
	Method     Method
	DurationMs int64
	Error      string
}

// Understander is the capability contract the orchestrator depends on
// (spec §9): a non-optional interface with an explicit Noop
// implementation standing in for a disabled stage, replacing the
// source's nullable service reference pattern.
type Understander interface {
	Understand(ctx context.Context, query model.Query) Result
}

// Noop returns a minimal general-search intent with no extracted fields
// and zero confidence, performing no cache lookups, parsing, or LLM calls. Used when
// stages.understanding.enabled is false.
type Noop struct{}

func (Noop) Understand(_ context.Context, query model.Query) Result {
	return Result{
		Success: true,
		Intent: model.Intent{
			SearchType: model.SearchTypeGeneral,
			Confidence: 0,
		},
		Method: MethodNone,
	}
}

var _ Understander = Noop{}
var _ Understander = (*Stage)(nil)
