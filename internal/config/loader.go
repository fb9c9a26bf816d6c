package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if NOMINANTI_CONFIG is set
//  3. env (prefix NOMINANTI_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("NOMINANTI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: NOMINANTI_ADDR, NOMINANTI_API_KEY, ...
	// Map env keys like NOMINANTI_PAGE_DELAY_MS -> page_delay_ms (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NOMINANTI_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "nominanti_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.ThreadID == "":
		return nil, fmt.Errorf("%w: thread_id must not be empty", ErrInvalidConfig)
	case cfg.PageDelayMS < 0:
		return nil, fmt.Errorf("%w: page_delay_ms must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
