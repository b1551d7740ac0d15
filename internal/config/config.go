// Package config defines service configuration and its loading.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
package config

import "unicode/utf8"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the merged disaster CSV loaded at startup.
	DataPath string `koanf:"data_path"`

	// DataDelimiter is the single-character field separator of DataPath.
	DataDelimiter string `koanf:"data_delimiter"`

	// BoundariesPath is the GeoJSON state boundary collection.
	BoundariesPath string `koanf:"boundaries_path"`

	// PredictionYear marks the year that carries risk tiers.
	// Zero means the latest year in the data.
	PredictionYear int `koanf:"prediction_year"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// Title and Subtitle head the dashboard page.
	Title    string `koanf:"title"`
	Subtitle string `koanf:"subtitle"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DataPath:          "my_data/merged.csv",
		DataDelimiter:     ",",
		BoundariesPath:    "data/us-state-boundaries.geojson",
		PredictionYear:    0,
		ShutdownTimeoutMS: 30_000,
		Title:             "Natural Disaster Prediction in the United States",
		Subtitle:          "Deaths, damage and disaster counts by state and year",
	}
}

// Delimiter returns DataDelimiter as a rune, or 0 when it is not a single
// character.
func (c *Config) Delimiter() rune {
	if utf8.RuneCountInString(c.DataDelimiter) != 1 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.DataDelimiter)
	return r
}
