// Package ingest orchestrates full-thread ingestion runs: page fetch, post
// parsing and ledger writes, guarded so at most one run is in flight.
package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/filadelfiminer-alt/nominanti/internal/adapters/forum"
	"github.com/filadelfiminer-alt/nominanti/internal/adapters/repository"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/parse"
	"github.com/filadelfiminer-alt/nominanti/pkg/logger"
	"github.com/filadelfiminer-alt/nominanti/pkg/metrics"
)

// Flight states for the single-flight guard.
const (
	stateIdle int32 = iota
	stateRunning
)

// defaultPageDelay is the fixed pause between page fetches beyond the
// first, respecting the source's rate limits.
const defaultPageDelay = 300 * time.Millisecond

// Driver pulls pages of posts from the source, feeds each unseen post
// through the parser and writes accepted votes into the ledger.
//
// Concurrency model: runs are strictly sequential inside one flight; the
// guard makes concurrent triggers observe "already running" instead of
// starting a second sweep. The primed flag flips once, after the first
// completed run, and gates automatic triggering from read paths.
type Driver struct {
	source forum.Fetcher
	ledger repository.Store

	state     atomic.Int32
	primed    atomic.Bool
	pageDelay time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Driver.
type Option func(*Driver)

// WithPageDelay overrides the fixed inter-page delay. Tests shrink it.
func WithPageDelay(d time.Duration) Option {
	return func(dr *Driver) {
		if d >= 0 {
			dr.pageDelay = d
		}
	}
}

// WithLogger sets a custom logger for the driver.
func WithLogger(l logger.Logger) Option {
	return func(dr *Driver) {
		if l != nil {
			dr.logger = l
		}
	}
}

// NewDriver creates an ingestion driver over the given source and ledger.
func NewDriver(source forum.Fetcher, ledger repository.Store, opts ...Option) *Driver {
	d := &Driver{
		source:    source,
		ledger:    ledger,
		pageDelay: defaultPageDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.Named("ingest")
	}
	return d
}

// Running reports whether a run is currently in flight.
func (d *Driver) Running() bool {
	return d.state.Load() == stateRunning
}

// Primed reports whether at least one run has completed. Read paths use
// this to trigger ingestion exactly once instead of on every poll.
func (d *Driver) Primed() bool {
	return d.primed.Load()
}

// TryRun executes a full ingestion run unless one is already in flight, in
// which case it returns false without blocking. The flight is always
// released, whatever the run's outcome.
func (d *Driver) TryRun(ctx context.Context) bool {
	if !d.state.CompareAndSwap(stateIdle, stateRunning) {
		metrics.RecordIngestionRun("rejected")
		return false
	}
	defer d.state.Store(stateIdle)

	d.run(ctx)
	return true
}

// TryRunAsync starts a run in a background goroutine, subject to the same
// single-flight guard. Returns false when a run was already in flight.
func (d *Driver) TryRunAsync(ctx context.Context) bool {
	if !d.state.CompareAndSwap(stateIdle, stateRunning) {
		metrics.RecordIngestionRun("rejected")
		return false
	}
	go func() {
		defer d.state.Store(stateIdle)
		d.run(ctx)
	}()
	return true
}

// run executes one full sweep over the thread. Failures are contained
// here: a dead first page aborts the run, a dead later page is skipped and
// its posts are picked up by the next run since they stay unprocessed.
func (d *Driver) run(ctx context.Context) {
	runID := uuid.NewString()
	start := time.Now()
	log := d.logger
	log.Info(ctx, "starting ingestion run", logger.String("run_id", runID))

	firstPage, err := d.source.FetchPage(ctx, 1)
	if err != nil {
		log.Error(ctx, "failed to fetch first page, aborting run",
			logger.String("run_id", runID),
			logger.Error(err),
		)
		metrics.RecordIngestionRun("aborted")
		return
	}

	totalPages := firstPage.Links.Pages
	if totalPages < 1 {
		totalPages = 1
	}
	d.ledger.SetTotalPages(ctx, totalPages)
	metrics.UpdateTotalPages(totalPages)
	log.Info(ctx, "total pages to process",
		logger.String("run_id", runID),
		logger.Int("pages", totalPages),
	)

	newPosts := d.ingestPosts(ctx, firstPage.Posts)

	for page := 2; page <= totalPages; page++ {
		select {
		case <-time.After(d.pageDelay):
		case <-ctx.Done():
			log.Warn(ctx, "ingestion cancelled",
				logger.String("run_id", runID),
				logger.Int("page", page),
			)
			metrics.RecordIngestionRun("aborted")
			return
		}

		pageData, err := d.source.FetchPage(ctx, page)
		if err != nil {
			log.Error(ctx, "failed to fetch page, continuing",
				logger.String("run_id", runID),
				logger.Int("page", page),
				logger.Error(err),
			)
			continue
		}
		newPosts += d.ingestPosts(ctx, pageData.Posts)
	}

	d.primed.Store(true)
	metrics.RecordIngestionRun("completed")
	metrics.RecordIngestionDuration(time.Since(start).Seconds())
	log.Info(ctx, "ingestion run finished",
		logger.String("run_id", runID),
		logger.Int("new_posts", newPosts),
		logger.Int("votes", d.ledger.Size(ctx)),
	)
}

// ingestPosts parses every unseen post and writes its votes to the ledger.
// Returns the number of newly processed posts.
func (d *Driver) ingestPosts(ctx context.Context, posts []model.Post) int {
	processed := 0
	for _, post := range posts {
		if d.ledger.IsProcessed(ctx, post.PostID) {
			continue
		}
		for _, vote := range parse.Post(post) {
			d.ledger.Add(ctx, vote)
		}
		d.ledger.MarkProcessed(ctx, post.PostID)
		metrics.RecordPostProcessed()
		processed++
	}
	return processed
}
