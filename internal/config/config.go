// Package config defines the configuration structures for the kandang
// evaluator.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "console" | "json"
	OutputPaths []string `mapstructure:"output_paths"`
}

// DatasetConfig controls how historical datasets are read and compared.
type DatasetConfig struct {
	Path          string   `mapstructure:"path"`
	TopN          int      `mapstructure:"top_n"`
	HistogramBins int      `mapstructure:"histogram_bins"`
	Encodings     []string `mapstructure:"encodings"`
	Delimiters    []string `mapstructure:"delimiters"`
	MaxBytes      int64    `mapstructure:"max_bytes"`
}

// MetricsConfig controls the Prometheus textfile export.  ConstLabels are
// attached to every kandang series, for example to tell farms apart when
// several node exporters feed one Prometheus.
type MetricsConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	Namespace      string            `mapstructure:"namespace"`
	Subsystem      string            `mapstructure:"subsystem"`
	TextfilePath   string            `mapstructure:"textfile_path"`
	ProcessMetrics bool              `mapstructure:"process_metrics"`
	GoMetrics      bool              `mapstructure:"go_metrics"`
	ConstLabels    map[string]string `mapstructure:"const_labels"`
}

// AdvisoryConfig holds the input plausibility limits.  A negative value
// disables the corresponding check.
type AdvisoryConfig struct {
	MinAreaM2       float64 `mapstructure:"min_area_m2"`
	MaxDensity      float64 `mapstructure:"max_density"`
	MaxDepletionPct float64 `mapstructure:"max_depletion_pct"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

var knownEncodings = map[string]bool{
	"utf-8": true, "utf8": true,
	"latin-1": true, "latin1": true,
	"iso-8859-1": true, "iso8859-1": true,
	"cp1252": true, "windows-1252": true,
}

var metricNamePart = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected console|json", c.Log.Format)
	}

	// Dataset
	if c.Dataset.TopN < 1 {
		return fmt.Errorf("config: dataset.top_n must be ≥ 1, got %d", c.Dataset.TopN)
	}
	if c.Dataset.HistogramBins < 1 || c.Dataset.HistogramBins > MaxHistogramBins {
		return fmt.Errorf("config: dataset.histogram_bins %d is out of range [1, %d]", c.Dataset.HistogramBins, MaxHistogramBins)
	}
	for _, enc := range c.Dataset.Encodings {
		if !knownEncodings[strings.ToLower(strings.TrimSpace(enc))] {
			return fmt.Errorf("config: dataset.encodings contains unsupported encoding %q", enc)
		}
	}
	if len(c.Dataset.Delimiters) == 0 {
		return fmt.Errorf("config: dataset.delimiters must contain at least one delimiter")
	}
	if c.Dataset.MaxBytes < 1 {
		return fmt.Errorf("config: dataset.max_bytes must be ≥ 1, got %d", c.Dataset.MaxBytes)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}
	if c.Metrics.Namespace != "" && !metricNamePart.MatchString(c.Metrics.Namespace) {
		return fmt.Errorf("config: metrics.namespace %q is not a valid metric name prefix", c.Metrics.Namespace)
	}
	if c.Metrics.Subsystem != "" && !metricNamePart.MatchString(c.Metrics.Subsystem) {
		return fmt.Errorf("config: metrics.subsystem %q is not a valid metric name part", c.Metrics.Subsystem)
	}
	for name := range c.Metrics.ConstLabels {
		if !metricNamePart.MatchString(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("config: metrics.const_labels has invalid label name %q", name)
		}
	}

	return nil
}

//Personal.AI order the ending
