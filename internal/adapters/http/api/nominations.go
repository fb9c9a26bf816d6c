// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// NominationsHandler handles the aggregate dashboard payload.
type NominationsHandler struct {
	deps         Dependencies
	defaultLimit int
	maxLimit     int
}

// NewNominationsHandler creates a new nominations handler.
func NewNominationsHandler(deps Dependencies, defaultLimit, maxLimit int) *NominationsHandler {
	return &NominationsHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleGetNominations handles GET /api/nominations?limit=N requests.
// The first request triggers the initial ingestion run in the background;
// the response never waits for it, so early polls see a partial ledger.
func (h *NominationsHandler) HandleGetNominations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	h.deps.EnsurePrimed(r.Context())

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	ctx := r.Context()
	stats, err := h.deps.DashboardStats(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get nominations")
		return
	}
	categories, err := h.deps.CategoryStats(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get nominations")
		return
	}
	leaderboard, err := h.deps.Leaderboard(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get nominations")
		return
	}
	recent, err := h.deps.RecentVotes(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get nominations")
		return
	}

	writeJSON(w, http.StatusOK, nominationsResponse{
		Stats:       stats,
		Categories:  categories,
		Leaderboard: leaderboard,
		RecentVotes: recent,
	})
}
