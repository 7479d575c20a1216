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
//  2. file (YAML) if PRODSYNC_CONFIG is set
//  3. env (prefix PRODSYNC_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PRODSYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PRODSYNC_ADDR, PRODSYNC_FIELD_ID, ...
	// Map env keys like PRODSYNC_FIELD_ID -> field_id (flat keys).
	envProvider := env.Provider("PRODSYNC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "prodsync_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants every operating mode relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RemoteBaseURL == "":
		return fmt.Errorf("%w: remote_base_url must not be empty", ErrInvalidConfig)
	case c.FieldID == "":
		return fmt.Errorf("%w: field_id must not be empty", ErrInvalidConfig)
	case c.FieldMode != "text" && c.FieldMode != "enumerated":
		return fmt.Errorf("%w: field_mode must be text or enumerated, got %q", ErrInvalidConfig, c.FieldMode)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	case c.MaxPages <= 0:
		return fmt.Errorf("%w: max_pages must be positive", ErrInvalidConfig)
	case c.WebhookPath == "" || !strings.HasPrefix(c.WebhookPath, "/"):
		return fmt.Errorf("%w: webhook_path must start with /", ErrInvalidConfig)
	}
	return nil
}
