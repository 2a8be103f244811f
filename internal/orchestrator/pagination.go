package orchestrator

import "partsearch/internal/model"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Options is the request's pagination and filter input (spec §6).
type Options struct {
	Page    int
	Limit   int
	Filters map[string]any
}

// normalize clamps page and limit to their documented bounds.
func (o Options) normalize() Options {
	if o.Page < 1 {
		o.Page = defaultPage
	}
	if o.Limit < 1 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	return o
}

// paginate slices candidates into the requested page and builds the
// Pagination envelope (spec §4.10, §8 universal invariants).
func paginate(candidates []model.Candidate, opts Options) ([]model.Candidate, model.Pagination) {
	total := len(candidates)
	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	totalPages := 0
	if opts.Limit > 0 {
		totalPages = (total + opts.Limit - 1) / opts.Limit
	}

	page := candidates[start:end]
	return page, model.Pagination{
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    end < total,
	}
}
