// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
)

// Views exposes the derived dashboard views. Implementations recompute
// each view from the current ledger snapshot; nothing is cached.
type Views interface {
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStats, error)
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	RecentVotes(ctx context.Context, limit int) ([]model.RecentVote, error)
}

// Ingestion exposes the single-flight ingestion triggers and flags.
type Ingestion interface {
	// EnsurePrimed kicks off a background run when none has completed
	// yet and none is in flight. Safe to call on every read.
	EnsurePrimed(ctx context.Context)

	// Refresh runs a full ingestion synchronously. Returns false when a
	// run was already in flight and nothing was started.
	Refresh(ctx context.Context) bool

	// Running reports whether a run is currently in flight.
	Running() bool

	// Primed reports whether an initial run has completed.
	Primed() bool
}

// Dependencies bundles what the handlers need from the application layer.
type Dependencies interface {
	Views
	Ingestion
}

// Server wires HTTP routes for the nomination API.
type Server struct {
	nominationsHandler *NominationsHandler
	refreshHandler     *RefreshHandler
	healthHandler      *HealthHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxRecentLimit
// caps the ?limit query on /api/nominations.
func NewServer(deps Dependencies, defaultRecentLimit, maxRecentLimit int) *Server {
	return &Server{
		nominationsHandler: NewNominationsHandler(deps, defaultRecentLimit, maxRecentLimit),
		refreshHandler:     NewRefreshHandler(deps),
		healthHandler:      NewHealthHandler(deps),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/nominations", MetricsMiddleware(s.nominationsHandler.HandleGetNominations, "nominations"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/healthz", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/", s.dashboardHandler.HandleDashboard)
}

// nominationsResponse is the aggregate payload the dashboard polls.
type nominationsResponse struct {
	Stats       model.DashboardStats     `json:"stats"`
	Categories  []model.CategoryStats    `json:"categories"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
	RecentVotes []model.RecentVote       `json:"recentVotes"`
}

type refreshResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status           string `json:"status"`
	IsFetching       bool   `json:"isFetching"`
	InitialFetchDone bool   `json:"initialFetchDone"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
