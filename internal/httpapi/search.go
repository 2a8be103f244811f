// Package httpapi exposes the search pipeline over HTTP: POST
// /api/v1/search, GET /metrics, GET /health, wired with the chi middleware stack the
// rest of the codebase uses.
package httpapi

import (
	"encoding/json"
	"net/http"

	"partsearch/internal/model"
	"partsearch/internal/orchestrator"
)

// SearchHandler serves POST /api/v1/search.
type SearchHandler struct {
	orch *orchestrator.Orchestrator
}

// NewSearchHandler wires a SearchHandler.
func NewSearchHandler(orch *orchestrator.Orchestrator) *SearchHandler {
	return &SearchHandler{orch: orch}
}

type searchRequest struct {
	Query   string        `json:"query"`
	Options searchOptions `json:"options"`
}

type searchOptions struct {
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Filters map[string]any `json:"filters"`
}

// Search handles POST /api/v1/search (spec §6).
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.NewFailure("", "", "INVALID_REQUEST", "request body must be valid JSON"))
		return
	}

	opts := orchestrator.Options{
		Page:    req.Options.Page,
		Limit:   req.Options.Limit,
		Filters: req.Options.Filters,
	}

	resp := h.orch.Search(r.Context(), req.Query, opts)

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusBadRequest
		if resp.ErrorCode == orchestrator.ErrCodeUnexpectedInternal {
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
