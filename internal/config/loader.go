package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "KANDANG"

// Sentinel errors returned (wrapped) by Load.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigParseError   = errors.New("config file could not be parsed")
	ErrConfigValidation   = errors.New("config validation failed")
)

var (
	globalMu sync.RWMutex
	global   *Config
)

// Get returns the Config produced by the most recent successful Load, or nil.
func Get() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func setGlobal(cfg *Config) {
	globalMu.Lock()
	global = cfg
	globalMu.Unlock()
}

// ─────────────────────────────────────────────────────────────────────────────
// Load options
// ─────────────────────────────────────────────────────────────────────────────

type loadOptions struct {
	configPath  string
	searchPaths []string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath loads exactly the given file; a missing file is an error.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths replaces the default search locations.  Each directory is
// searched for kandang.yaml, then config.yaml.
func WithSearchPaths(dirs ...string) LoadOption {
	return func(o *loadOptions) {
		o.searchPaths = o.searchPaths[:0]
		for _, d := range dirs {
			o.searchPaths = append(o.searchPaths,
				filepath.Join(d, "kandang.yaml"),
				filepath.Join(d, "config.yaml"))
		}
	}
}

// WithOverrides sets keys (dotted, e.g. "dataset.top_n") with the highest
// precedence, above file and environment.
func WithOverrides(kv map[string]interface{}) LoadOption {
	return func(o *loadOptions) { o.overrides = kv }
}

// DefaultSearchPaths returns the config files tried when no path is given:
// ./kandang.yaml, ~/.kandang/config.yaml, /etc/kandang/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"kandang.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".kandang", "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", "kandang", "config.yaml"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────────────────

// newViper builds a Viper instance with YAML file type, KANDANG_ env prefix and
// a key replacer that maps "." → "_" so that "dataset.top_n" resolves to
// KANDANG_DATASET_TOP_N.  Every key is registered with its default so that
// environment overrides apply even when no file is read.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v, NewDefaultConfig())
	return v
}

func registerDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("dataset.path", d.Dataset.Path)
	v.SetDefault("dataset.top_n", d.Dataset.TopN)
	v.SetDefault("dataset.histogram_bins", d.Dataset.HistogramBins)
	v.SetDefault("dataset.encodings", d.Dataset.Encodings)
	v.SetDefault("dataset.delimiters", d.Dataset.Delimiters)
	v.SetDefault("dataset.max_bytes", d.Dataset.MaxBytes)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.subsystem", d.Metrics.Subsystem)
	v.SetDefault("metrics.textfile_path", d.Metrics.TextfilePath)
	v.SetDefault("metrics.process_metrics", d.Metrics.ProcessMetrics)
	v.SetDefault("metrics.go_metrics", d.Metrics.GoMetrics)

	v.SetDefault("advisory.min_area_m2", d.Advisory.MinAreaM2)
	v.SetDefault("advisory.max_density", d.Advisory.MaxDensity)
	v.SetDefault("advisory.max_depletion_pct", d.Advisory.MaxDepletionPct)
}

// Load resolves configuration from, in increasing precedence: defaults, the
// first config file found, KANDANG_* environment variables and overrides.
// Without WithConfigPath a missing file is not an error.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{searchPaths: DefaultSearchPaths()}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper()
	path, err := resolvePath(o)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %q: %w: %v", path, ErrConfigParseError, err)
		}
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	setGlobal(cfg)
	return cfg, nil
}

func resolvePath(o *loadOptions) (string, error) {
	if o.configPath != "" {
		if _, err := os.Stat(o.configPath); err != nil {
			return "", fmt.Errorf("config: %q: %w", o.configPath, ErrConfigFileNotFound)
		}
		return o.configPath, nil
	}
	for _, p := range o.searchPaths {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// LoadFromFile is shorthand for Load(WithConfigPath(path)).
func LoadFromFile(path string) (*Config, error) {
	return Load(WithConfigPath(path))
}

// LoadFromEnv builds a Config from defaults and KANDANG_* environment
// variables only, ignoring any config file on disk.
func LoadFromEnv() (*Config, error) {
	return Load(WithSearchPaths())
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}

	return cfg, nil
}

// MustLoad is Load that panics on any error.
func MustLoad(opts ...LoadOption) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
