// Package cli implements the kandang command line: global flags, configuration
// and logger initialisation, and the evaluate, dataset and rules commands.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	app "github.com/turtacn/kandang-feasibility/internal/application/feasibility"
	"github.com/turtacn/kandang-feasibility/internal/config"
	domain "github.com/turtacn/kandang-feasibility/internal/domain/feasibility"
	"github.com/turtacn/kandang-feasibility/internal/domain/history"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/dataset"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Collector    prometheus.MetricsCollector
	Metrics      *prometheus.AppMetrics
	Service      app.Service
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kandang",
		Short: "Kandang feasibility evaluator (fuzzy Tsukamoto)",
		Long: "kandang evaluates whether a broiler house is fit for continued operation.\n" +
			"Stocking density and depletion are derived from the house area and bird\n" +
			"counts, scored by a nine-rule Tsukamoto fuzzy model and optionally compared\n" +
			"against a CSV export of past houses.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cliCtx, err := GetCLIContext(cmd); err == nil {
				_ = cliCtx.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./kandang.yaml, ~/.kandang/config.yaml, /etc/kandang/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, yaml, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.InvalidParam(err.Error())
	})

	cmd.AddCommand(
		NewEvaluateCmd(),
		NewDatasetCmd(),
		NewRulesCmd(),
		newVersionCmd(),
	)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config and logger initialisation.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kandang %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// persistentPreRun initializes config, logger, metrics and the service, then
// stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	format := strings.ToLower(opts.OutputFormat)
	switch format {
	case OutputText, OutputJSON, OutputYAML, OutputTable:
	default:
		return errors.InvalidParam(fmt.Sprintf("unsupported output format %q (expected text, json, yaml or table)", opts.OutputFormat))
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "config initialization failed").WithDetail(err.Error())
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "logger initialization failed").WithDetail(err.Error())
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		Subsystem:            cfg.Metrics.Subsystem,
		EnableProcessMetrics: cfg.Metrics.ProcessMetrics,
		EnableGoMetrics:      cfg.Metrics.GoMetrics,
		ConstLabels:          cfg.Metrics.ConstLabels,
	}, logger)
	if err != nil {
		return err
	}
	metrics := prometheus.NewAppMetrics(collector)

	loader := dataset.NewLoader(dataset.Config{
		Encodings:  cfg.Dataset.Encodings,
		Delimiters: cfg.Dataset.Delimiters,
		MaxBytes:   cfg.Dataset.MaxBytes,
	}, logger)

	svc := app.NewService(loader, metrics, app.ServiceConfig{
		Advisory: domain.AdvisoryThresholds{
			MinAreaM2:       cfg.Advisory.MinAreaM2,
			MaxDensity:      cfg.Advisory.MaxDensity,
			MaxDepletionPct: cfg.Advisory.MaxDepletionPct,
		},
		Compare: history.Options{TopN: cfg.Dataset.TopN, Bins: cfg.Dataset.HistogramBins},
	}, logger)

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Collector:    collector,
		Metrics:      metrics,
		Service:      svc,
		OutputFormat: format,
		Verbose:      opts.Verbose,
		Timeout:      opts.Timeout,
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, cliContextKey{}, cliCtx))

	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromFile(opts.ConfigPath)
	}
	return config.Load()
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = strings.ToLower(opts.LogLevel)
	}
	if opts.Verbose {
		level = "debug"
	}

	outputs := cfg.Log.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           cfg.Log.Format,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	return logger, nil
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}

	return cliCtx, nil
}

// commandContext returns the command context bounded by the global timeout.
func (c *CLIContext) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	return ExecuteArgs(nil)
}

// ExecuteArgs runs the CLI with args instead of os.Args[1:] when args is
// non-nil.
func ExecuteArgs(args []string) error {
	rootCmd := NewRootCommand()
	if args != nil {
		rootCmd.SetArgs(args)
	}

	if err := rootCmd.Execute(); err != nil {
		err = classify(err)
		PrintError(rootCmd, err)
		return err
	}

	return nil
}

// classify turns cobra's own argument errors, which are plain errors, into
// usage errors so that they exit with EX_USAGE.
func classify(err error) error {
	var ae *errors.AppError
	if errors.As(err, &ae) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeBadRequest, "usage error").WithDetail(err.Error())
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

//Personal.AI order the ending
