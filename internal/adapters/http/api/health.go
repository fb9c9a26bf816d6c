// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/filadelfiminer-alt/nominanti/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps Ingestion
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Ingestion) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /api/health requests with the ingestion flags.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "ok",
		IsFetching:       h.deps.Running(),
		InitialFetchDone: h.deps.Primed(),
	})
}

// HandleMetrics handles GET /healthz requests, serving Prometheus metrics
// from the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
