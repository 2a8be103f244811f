package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	db *pgxpool.Pool
}

// NewHealthHandler wires a HealthHandler. db may be nil when the
// service runs without a reference text index.
func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Check reports liveness and, when a database pool is configured,
// connectivity to it.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "unconfigured", Timestamp: time.Now()}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		resp.Database = "connected"
		if err := h.db.Ping(ctx); err != nil {
			resp.Database = "disconnected"
			resp.Status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
