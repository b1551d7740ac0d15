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

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DISASTERDASH_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DISASTERDASH_CONFIG is set
//  3. env (prefix DISASTERDASH_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// DISASTERDASH_DATA_PATH -> data_path; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
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

// Validate checks required fields and ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataPath == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.Delimiter() == 0, c.DataDelimiter == `"`, c.DataDelimiter == "\n", c.DataDelimiter == "\r":
		return fmt.Errorf("%w: data_delimiter must be a single character other than a quote or newline", ErrInvalidConfig)
	case c.BoundariesPath == "":
		return fmt.Errorf("%w: boundaries_path must not be empty", ErrInvalidConfig)
	case c.PredictionYear < 0:
		return fmt.Errorf("%w: prediction_year must be >= 0", ErrInvalidConfig)
	case c.ShutdownTimeoutMS <= 0:
		return fmt.Errorf("%w: shutdown_timeout_ms must be > 0", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
