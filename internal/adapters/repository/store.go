// Package repository defines the vote ledger store and its in-memory
// implementation.
package repository

import (
	"context"
	"time"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
)

// Store provides read/write access to the vote ledger and the bookkeeping
// state that ingestion maintains alongside it. The ledger is the single
// source of truth: every derived view is recomputed from Votes() on read.
type Store interface {
	// Add stores vote unless its dedup key was seen before. The first
	// write wins; replays are a silent no-op. Returns true when the vote
	// was newly stored.
	Add(ctx context.Context, vote model.Vote) bool

	// Votes returns a snapshot of all accepted votes in insertion order.
	Votes(ctx context.Context) []model.Vote

	// Size returns the number of accepted votes.
	Size(ctx context.Context) int

	// MarkProcessed records that a source post was scanned. The set only
	// grows; a processed post is never parsed again.
	MarkProcessed(ctx context.Context, postID int64)

	// IsProcessed reports whether a source post was already scanned.
	IsProcessed(ctx context.Context, postID int64) bool

	// ProcessedCount returns the number of scanned source posts.
	ProcessedCount(ctx context.Context) int

	// SetTotalPages records the source-reported page count.
	SetTotalPages(ctx context.Context, pages int)

	// TotalPages returns the last recorded source page count.
	TotalPages(ctx context.Context) int

	// LastUpdated returns the time of the last ledger mutation.
	LastUpdated(ctx context.Context) time.Time

	// Reset clears votes, the processed set and the stored page count.
	Reset(ctx context.Context)
}
