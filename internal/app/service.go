// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/filadelfiminer-alt/nominanti/internal/adapters/forum"
	"github.com/filadelfiminer-alt/nominanti/internal/adapters/repository"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/aggregate"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
	"github.com/filadelfiminer-alt/nominanti/internal/ingest"
	"github.com/filadelfiminer-alt/nominanti/pkg/logger"
)

// Service owns the vote ledger and the ingestion driver and implements the
// view and trigger dependencies of the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	ledger repository.Store
	source forum.Fetcher
	driver *ingest.Driver

	// Configuration
	forumAPIBase string
	threadID     string
	apiKey       string
	pageDelay    time.Duration
	fetchTimeout time.Duration

	// State
	started bool
	runCtx  context.Context
	cancel  context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithForumAPIBase sets the forum API base URL.
func WithForumAPIBase(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.forumAPIBase = base
		}
	}
}

// WithThreadID sets the nomination thread to ingest.
func WithThreadID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.threadID = id
		}
	}
}

// WithAPIKey sets the bearer credential for the forum API.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithPageDelay sets the fixed delay between page fetches.
func WithPageDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.pageDelay = d
		}
	}
}

// WithFetchTimeout bounds a single page fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithSource injects a custom data source. Tests use this to avoid the
// network entirely.
func WithSource(source forum.Fetcher) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithLedger injects a custom ledger store.
func WithLedger(ledger repository.Store) Option {
	return func(s *Service) {
		if ledger != nil {
			s.ledger = ledger
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		forumAPIBase: "https://prod-api.lolz.live",
		threadID:     "9429102",
		pageDelay:    300 * time.Millisecond,
		fetchTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. Ingestion does not start here;
// the first dashboard read or a manual refresh triggers it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting nomination service...")

	if s.ledger == nil {
		s.ledger = repository.NewMemLedger()
	}
	if s.source == nil {
		s.source = forum.NewClient(s.threadID, s.apiKey,
			forum.WithBaseURL(s.forumAPIBase),
			forum.WithTimeout(s.fetchTimeout),
		)
	}
	s.driver = ingest.NewDriver(s.source, s.ledger,
		ingest.WithPageDelay(s.pageDelay),
		ingest.WithLogger(s.logger.Named("ingest")),
	)

	// Background ingestion outlives the request that triggers it, so runs
	// are bound to the service lifetime, not the poll that started them.
	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))

	if s.apiKey == "" {
		s.logger.Warn(ctx, "forum api key not set; ingestion will not start")
	}

	s.started = true
	s.logger.Info(ctx, "nomination service started",
		logger.String("thread_id", s.threadID),
	)

	return nil
}

// Stop shuts down the service and cancels any in-flight ingestion.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.started = false
	s.logger.Info(context.Background(), "nomination service stopped")
}

// EnsurePrimed triggers the one-time automatic ingestion run. It fires in
// the background on the first read and is a no-op once a run has completed
// or while one is in flight.
func (s *Service) EnsurePrimed(_ context.Context) {
	if s.driver.Primed() || s.driver.Running() {
		return
	}
	s.driver.TryRunAsync(s.runCtx)
}

// Refresh runs a full ingestion synchronously, subject to the single-flight
// guard. Returns false when a run was already in flight.
func (s *Service) Refresh(_ context.Context) bool {
	return s.driver.TryRun(s.runCtx)
}

// Running reports whether an ingestion run is in flight.
func (s *Service) Running() bool {
	return s.driver.Running()
}

// Primed reports whether an initial ingestion run has completed.
func (s *Service) Primed() bool {
	return s.driver.Primed()
}

// snapshot captures the ledger state one view computation runs against.
func (s *Service) snapshot(ctx context.Context) aggregate.Snapshot {
	return aggregate.Snapshot{
		Votes:          s.ledger.Votes(ctx),
		LastUpdated:    s.ledger.LastUpdated(ctx),
		ProcessedPosts: s.ledger.ProcessedCount(ctx),
		TotalPages:     s.ledger.TotalPages(ctx),
	}
}

// DashboardStats returns the scalar summary view.
func (s *Service) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return aggregate.Dashboard(s.snapshot(ctx)), nil
}

// CategoryStats returns the per-category tallies view.
func (s *Service) CategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	return aggregate.CategoryStats(s.snapshot(ctx)), nil
}

// Leaderboard returns the cross-category nominee ranking.
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return aggregate.Leaderboard(s.snapshot(ctx)), nil
}

// RecentVotes returns the newest votes, newest first.
func (s *Service) RecentVotes(ctx context.Context, limit int) ([]model.RecentVote, error) {
	return aggregate.RecentVotes(s.snapshot(ctx), limit), nil
}

// GetStats returns operational counters for diagnostics.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	if !started {
		return map[string]interface{}{"started": false}
	}

	ctx := context.Background()
	return map[string]interface{}{
		"started":        started,
		"votes":          s.ledger.Size(ctx),
		"processedPosts": s.ledger.ProcessedCount(ctx),
		"totalPages":     s.ledger.TotalPages(ctx),
		"isFetching":     s.driver.Running(),
		"primed":         s.driver.Primed(),
	}
}
