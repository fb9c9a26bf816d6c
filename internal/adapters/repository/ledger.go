package repository

import (
	"context"
	"sync"
	"time"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
	"github.com/filadelfiminer-alt/nominanti/pkg/metrics"
)

// MemLedger implements Store with mutex-guarded in-memory state. Ingestion
// writes are single-flight by construction, but dashboard reads run
// concurrently and may observe a partially-ingested ledger; that is the
// documented consistency model.
type MemLedger struct {
	mu sync.RWMutex

	// votes keyed by Vote.Key(); order preserves first insertion.
	seen  map[string]struct{}
	order []model.Vote

	processed   map[int64]struct{}
	totalPages  int
	lastUpdated time.Time

	now func() time.Time
}

// NewMemLedger creates an empty ledger with configuration options.
func NewMemLedger(opts ...Option) *MemLedger {
	l := &MemLedger{
		seen:      make(map[string]struct{}),
		processed: make(map[int64]struct{}),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastUpdated = l.now()
	return l
}

// Add stores vote under its dedup key; the first write per key wins.
func (l *MemLedger) Add(_ context.Context, vote model.Vote) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := vote.Key()
	if _, dup := l.seen[key]; dup {
		metrics.RecordVoteDuplicate()
		return false
	}
	l.seen[key] = struct{}{}
	l.order = append(l.order, vote)
	l.lastUpdated = l.now()
	metrics.RecordVoteAccepted()
	metrics.UpdateLedgerSize(len(l.order))
	return true
}

// Votes returns a copy of the accepted votes in insertion order.
func (l *MemLedger) Votes(_ context.Context) []model.Vote {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Vote, len(l.order))
	copy(out, l.order)
	return out
}

// Size returns the number of accepted votes.
func (l *MemLedger) Size(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// MarkProcessed records a scanned source post.
func (l *MemLedger) MarkProcessed(_ context.Context, postID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.processed[postID] = struct{}{}
}

// IsProcessed reports whether a source post was already scanned.
func (l *MemLedger) IsProcessed(_ context.Context, postID int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.processed[postID]
	return ok
}

// ProcessedCount returns the size of the processed-post set.
func (l *MemLedger) ProcessedCount(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.processed)
}

// SetTotalPages records the source-reported page count.
func (l *MemLedger) SetTotalPages(_ context.Context, pages int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalPages = pages
}

// TotalPages returns the last recorded source page count.
func (l *MemLedger) TotalPages(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalPages
}

// LastUpdated returns the time of the last ledger mutation.
func (l *MemLedger) LastUpdated(_ context.Context) time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastUpdated
}

// Reset clears all ledger state and restamps lastUpdated.
func (l *MemLedger) Reset(_ context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seen = make(map[string]struct{})
	l.order = nil
	l.processed = make(map[int64]struct{})
	l.totalPages = 0
	l.lastUpdated = l.now()
	metrics.UpdateLedgerSize(0)
}
