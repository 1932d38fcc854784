package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/turtacn/kandang-feasibility/internal/application/feasibility"
	"github.com/turtacn/kandang-feasibility/internal/domain/history"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

type evaluateOptions struct {
	area            float64
	initial         int
	surviving       int
	datasetPath     string
	noDataset       bool
	metricsTextfile string
}

// NewEvaluateCmd creates the evaluate command.
func NewEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the feasibility of one house",
		Long: "Derive stocking density and depletion from the house area and bird counts,\n" +
			"score them with the fuzzy rule base and print the category with expert advice.\n" +
			"With --dataset (or dataset.path in the config) the house is also compared\n" +
			"against past houses; the comparison never changes the score.",
		Example: "  kandang evaluate --area 300 --initial 5000 --surviving 4800\n" +
			"  kandang evaluate --area 300 --initial 5000 --surviving 4800 --dataset kandang.csv -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runEvaluate(cmd, cliCtx, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.area, "area", 0, "house floor area in m² [REQUIRED]")
	f.IntVar(&opts.initial, "initial", 0, "initial bird count [REQUIRED]")
	f.IntVar(&opts.surviving, "surviving", 0, "surviving bird count [REQUIRED]")
	f.StringVar(&opts.datasetPath, "dataset", "", "historical dataset CSV to compare against (default: dataset.path)")
	f.BoolVar(&opts.noDataset, "no-dataset", false, "skip the dataset comparison even when dataset.path is set")
	f.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file (default: metrics.textfile_path when metrics are enabled)")

	return cmd
}

func runEvaluate(cmd *cobra.Command, cliCtx *CLIContext, opts *evaluateOptions) error {
	if err := requireFlags(cmd, "area", "initial", "surviving"); err != nil {
		return err
	}

	req := &app.EvaluateRequest{
		AreaM2:         opts.area,
		InitialCount:   opts.initial,
		SurvivingCount: opts.surviving,
	}
	if !opts.noDataset {
		req.DatasetPath = opts.datasetPath
		if req.DatasetPath == "" {
			req.DatasetPath = cliCtx.Config.Dataset.Path
		}
	}

	ctx, cancel := cliCtx.commandContext(cmd)
	defer cancel()

	report, err := cliCtx.Service.Evaluate(ctx, req)
	if exportErr := exportMetrics(cliCtx, opts.metricsTextfile); exportErr != nil {
		cliCtx.Logger.Warn("metrics export failed", logging.ErrorFields(exportErr)...)
	}
	if err != nil {
		return err
	}

	return PrintResult(cmd, reportView{report})
}

// exportMetrics writes the registry to path, or to the configured textfile
// when metrics are enabled.  Nothing is written otherwise.
func exportMetrics(cliCtx *CLIContext, path string) error {
	if path == "" && cliCtx.Config.Metrics.Enabled {
		path = cliCtx.Config.Metrics.TextfilePath
	}
	if path == "" || cliCtx.Collector == nil {
		return nil
	}
	if err := cliCtx.Collector.WriteTextfile(path); err != nil {
		return err
	}
	cliCtx.Logger.Debug("metrics written", logging.String("path", path))
	return nil
}

// requireFlags reports unset flags as a usage error.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, n := range names {
		if !cmd.Flags().Changed(n) {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return errors.InvalidParam("required flag(s) not set: " + strings.Join(missing, ", "))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Report rendering
// ─────────────────────────────────────────────────────────────────────────────

type reportView struct {
	r *app.Report
}

func (v reportView) Payload() interface{} { return v.r }

func (v reportView) Text() string {
	r := v.r
	res := r.Result
	var sb strings.Builder

	fmt.Fprintf(&sb, "Kandang feasibility report %s\n\n", r.ID)
	fmt.Fprintf(&sb, "  Area            %.2f m²\n", r.Input.AreaM2)
	fmt.Fprintf(&sb, "  Initial birds   %d\n", r.Input.InitialCount)
	fmt.Fprintf(&sb, "  Surviving birds %d (%d dead)\n", r.Input.SurvivingCount, r.Input.Deaths())
	fmt.Fprintf(&sb, "  Density         %.2f birds/m²\n", res.Indicators.Density)
	fmt.Fprintf(&sb, "  Depletion       %.2f %%\n\n", res.Indicators.DepletionPct)

	sb.WriteString("Membership degrees\n")
	fmt.Fprintf(&sb, "  density    low %.3f  medium %.3f  high %.3f\n", res.Degrees.Density[0], res.Degrees.Density[1], res.Degrees.Density[2])
	fmt.Fprintf(&sb, "  depletion  low %.3f  medium %.3f  high %.3f\n\n", res.Degrees.Depletion[0], res.Degrees.Depletion[1], res.Degrees.Depletion[2])

	sb.WriteString("Fired rules\n")
	if len(res.Activations) == 0 {
		sb.WriteString("  none\n")
	}
	for _, a := range res.Activations {
		fmt.Fprintf(&sb, "  %-34s α=%.3f  z=%.2f\n", a.Rule.String(), a.Strength, a.Value)
	}

	fmt.Fprintf(&sb, "\nScore     %.2f\n", res.Score)
	fmt.Fprintf(&sb, "Category  %s (%s)\n", res.Category, r.Label)
	if res.NoRuleFired {
		sb.WriteString("          no rule fired; the score is a placeholder\n")
	}

	sb.WriteString("\nAdvice\n")
	for _, n := range r.Advice.Notes {
		fmt.Fprintf(&sb, "  - %s\n", n)
	}
	fmt.Fprintf(&sb, "  %s\n", r.Advice.Conclusion)

	for _, a := range r.Advisories {
		fmt.Fprintf(&sb, "\nWARNING: %s", a.Message)
	}
	if len(r.Advisories) > 0 {
		sb.WriteString("\n")
	}

	if r.Comparison != nil {
		sb.WriteString("\n")
		sb.WriteString(comparisonText(r.Dataset, r.Comparison))
	}
	return sb.String()
}

func (v reportView) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (v reportView) TableRows() [][]string {
	r := v.r
	res := r.Result
	rows := [][]string{
		{"id", r.ID},
		{"area_m2", formatFloat(r.Input.AreaM2)},
		{"initial_count", strconv.Itoa(r.Input.InitialCount)},
		{"surviving_count", strconv.Itoa(r.Input.SurvivingCount)},
		{"density", formatFloat(res.Indicators.Density)},
		{"depletion_pct", formatFloat(res.Indicators.DepletionPct)},
		{"score", formatFloat(res.Score)},
		{"category", string(res.Category)},
		{"label", r.Label},
	}
	for _, a := range res.Activations {
		rows = append(rows, []string{"rule " + a.Rule.Code(), fmt.Sprintf("α=%.3f z=%.2f", a.Strength, a.Value)})
	}
	for _, a := range r.Advisories {
		rows = append(rows, []string{"advisory", a.Code})
	}
	if c := r.Comparison; c != nil {
		rows = append(rows,
			[]string{"dataset_rows", strconv.Itoa(c.Rows)},
			[]string{"dataset_total_birds", strconv.Itoa(c.TotalBirds)},
			[]string{"dataset_total_deaths", strconv.Itoa(c.TotalDeaths)},
			[]string{"dataset_mean_density", formatFloat(c.MeanDensity)},
		)
		for i, n := range c.Nearest {
			rows = append(rows, []string{fmt.Sprintf("nearest %d", i+1), fmt.Sprintf("%s (%.2f)", n.Record.Label(), n.Record.Density)})
		}
	}
	return rows
}

func comparisonText(ds *app.DatasetSummary, c *history.Comparison) string {
	var sb strings.Builder
	sb.WriteString("Dataset comparison\n")
	if ds != nil {
		fmt.Fprintf(&sb, "  Source          %s (%s, delimiter %q)\n", ds.Source, ds.Encoding, ds.Delimiter)
	}
	fmt.Fprintf(&sb, "  Houses          %d (%d with birds)\n", c.Rows, c.ValidRows)
	fmt.Fprintf(&sb, "  Total birds     %d\n", c.TotalBirds)
	fmt.Fprintf(&sb, "  Total deaths    %d\n", c.TotalDeaths)
	fmt.Fprintf(&sb, "  Mean density    %.2f birds/m²\n", c.MeanDensity)
	if n := c.Skipped.Total() + c.MissingDeaths; n > 0 {
		fmt.Fprintf(&sb, "  Missing fields  %d\n", n)
	}

	if len(c.Nearest) > 0 {
		fmt.Fprintf(&sb, "\nNearest by density (current %.2f)\n", c.CurrentDensity)
		rows := make([][]string, len(c.Nearest))
		for i, n := range c.Nearest {
			rows[i] = []string{
				n.Record.Label(),
				formatFloat(n.Record.Density),
				formatFloat(n.Record.DepletionPct),
				formatFloat(n.Distance),
			}
		}
		sb.WriteString(indent(FormatTable([]string{"HOUSE", "DENSITY", "DEPLETION %", "DISTANCE"}, rows)))
	}

	if len(c.DensityDist.Counts) > 0 {
		sb.WriteString("\nDensity distribution\n")
		sb.WriteString(histogramText(c.DensityDist))
	}
	if len(c.DepletionDist.Counts) > 0 {
		sb.WriteString("\nDepletion distribution\n")
		sb.WriteString(histogramText(c.DepletionDist))
	}
	return sb.String()
}

func histogramText(h history.Histogram) string {
	var sb strings.Builder
	edges := h.Edges()
	for i, n := range h.Counts {
		fmt.Fprintf(&sb, "  %8.2f - %-8.2f %-20s %d\n", edges[i], edges[i+1], strings.Repeat("#", min(n, 20)), n)
	}
	return sb.String()
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(l)
	}
	return sb.String()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

//Personal.AI order the ending
