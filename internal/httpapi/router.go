package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"partsearch/internal/orchestrator"
	"partsearch/internal/telemetry"
)

// NewRouter assembles the HTTP surface over the orchestrator (cmd/
// wires the concrete dependencies).
func NewRouter(orch *orchestrator.Orchestrator, registry *telemetry.Registry, db *pgxpool.Pool) http.Handler {
	searchHandler := NewSearchHandler(orch)
	metricsHandler := NewMetricsHandler(registry)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", healthHandler.Check)
	r.Get("/metrics", metricsHandler.JSON)
	r.Get("/metrics/prometheus", Prometheus().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", searchHandler.Search)
	})

	return r
}
