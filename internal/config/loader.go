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
//  2. file (YAML) from path, or PAGEPULSE_CONFIG when path is empty
//  3. env (prefix PAGEPULSE_)
//
// An empty URL set after all layers is a fatal configuration error.
func Load(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("PAGEPULSE_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: PAGEPULSE_RUN_COUNT, PAGEPULSE_DATA_DIR, ...
	// Map env keys like PAGEPULSE_RUN_COUNT -> run_count (flat keys).
	// Underscores are preserved to match koanf tags on the struct.
	// PAGEPULSE_URLS accepts a comma-separated list.
	envProvider := env.ProviderWithValue("PAGEPULSE_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, "pagepulse_")
		if key == "urls" {
			parts := strings.Split(value, ",")
			urls := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					urls = append(urls, p)
				}
			}
			return key, urls
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	cfg.URLs = dedupeURLs(cfg.URLs)
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.URLs) == 0 {
		return ErrNoURLs
	}
	if cfg.RunCount < 1 {
		return fmt.Errorf("%w: run_count must be >= 1", ErrInvalidConfig)
	}
	if cfg.PauseMS < 0 {
		return fmt.Errorf("%w: pause_ms must be >= 0", ErrInvalidConfig)
	}
	switch cfg.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, cfg.Store)
	}
	switch cfg.Scorer {
	case ScorerPSI, ScorerCLI, ScorerStatic:
	default:
		return fmt.Errorf("%w: unknown scorer %q", ErrInvalidConfig, cfg.Scorer)
	}
	return nil
}

// dedupeURLs drops repeated URLs while preserving first-seen order.
func dedupeURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
