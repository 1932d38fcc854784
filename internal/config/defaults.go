package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultTopN          = 5
	DefaultHistogramBins = 15
	MaxHistogramBins     = 15
	DefaultMaxBytes      = 32 << 20

	DefaultMetricsNamespace = "kandang"

	DefaultMinAreaM2       = 50.0
	DefaultMaxDensity      = 20.0
	DefaultMaxDepletionPct = 20.0
)

// DefaultEncodings lists the charsets tried when reading a dataset, in order.
var DefaultEncodings = []string{"utf-8", "latin-1", "iso-8859-1", "cp1252"}

// DefaultDelimiters lists the field separators tried when reading a dataset.
var DefaultDelimiters = []string{",", ";", "\t"}

// NewDefaultConfig returns a Config with every field at its default.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.TopN == 0 {
		cfg.Dataset.TopN = DefaultTopN
	}
	if cfg.Dataset.HistogramBins == 0 {
		cfg.Dataset.HistogramBins = DefaultHistogramBins
	}
	if len(cfg.Dataset.Encodings) == 0 {
		cfg.Dataset.Encodings = append([]string(nil), DefaultEncodings...)
	}
	if len(cfg.Dataset.Delimiters) == 0 {
		cfg.Dataset.Delimiters = append([]string(nil), DefaultDelimiters...)
	}
	if cfg.Dataset.MaxBytes == 0 {
		cfg.Dataset.MaxBytes = DefaultMaxBytes
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Advisory ──────────────────────────────────────────────────────────────
	// Zero means "not set"; a negative value disables the check.
	if cfg.Advisory.MinAreaM2 == 0 {
		cfg.Advisory.MinAreaM2 = DefaultMinAreaM2
	}
	if cfg.Advisory.MaxDensity == 0 {
		cfg.Advisory.MaxDensity = DefaultMaxDensity
	}
	if cfg.Advisory.MaxDepletionPct == 0 {
		cfg.Advisory.MaxDepletionPct = DefaultMaxDepletionPct
	}
}

//Personal.AI order the ending
