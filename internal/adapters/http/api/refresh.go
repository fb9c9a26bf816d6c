// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RefreshHandler handles manual ingestion triggers.
type RefreshHandler struct {
	deps Ingestion
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Ingestion) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandlePostRefresh handles POST /api/refresh requests. A manual refresh
// bypasses the primed gate but not the single-flight guard: when a run is
// already in flight the caller gets "in_progress" and nothing starts.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if started := h.deps.Refresh(r.Context()); !started {
		writeJSON(w, http.StatusOK, refreshResponse{
			Message: "Already refreshing",
			Status:  "in_progress",
		})
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Message: "Refresh complete",
		Status:  "done",
	})
}
