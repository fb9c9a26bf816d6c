// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ForumAPIBase is the base URL of the forum posts API.
	ForumAPIBase string `koanf:"forum_api_base"`

	// ThreadID identifies the nomination thread to ingest.
	ThreadID string `koanf:"thread_id"`

	// APIKey is the bearer credential for the forum API. Without it
	// ingestion never starts; the server still serves empty views.
	APIKey string `koanf:"api_key"`

	// PageDelayMS is the fixed pause between page fetches beyond the first.
	PageDelayMS int `koanf:"page_delay_ms"`

	// FetchTimeoutSec bounds a single page fetch.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// RecentVotesLimit is the default live-feed length.
	RecentVotesLimit int `koanf:"recent_votes_limit"`

	// MaxRecentVotesLimit caps GET /api/nominations?limit.
	MaxRecentVotesLimit int `koanf:"max_recent_votes_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":5000",
		ForumAPIBase:        "https://prod-api.lolz.live",
		ThreadID:            "9429102",
		PageDelayMS:         300,
		FetchTimeoutSec:     30,
		RecentVotesLimit:    20,
		MaxRecentVotesLimit: 100,
	}
}
