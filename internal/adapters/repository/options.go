package repository

import "time"

// Option applies a configuration option to the MemLedger.
type Option func(*MemLedger)

// WithClock overrides the ledger's time source. Tests use this to make
// lastUpdated stamps deterministic.
func WithClock(now func() time.Time) Option {
	return func(l *MemLedger) {
		if now != nil {
			l.now = now
		}
	}
}
