package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/turtacn/kandang-feasibility/internal/application/feasibility"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// NewDatasetCmd creates the dataset command.
func NewDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Historical dataset tools",
		Long:  "Inspect CSV exports of past houses before using them for comparison",
	}

	cmd.AddCommand(newDatasetInspectCmd())

	return cmd
}

func newDatasetInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [path]",
		Short: "Report how a dataset file is read",
		Long: "Detect the encoding and delimiter of a dataset file, repair malformed\n" +
			"layouts and print row counts and totals.  Without an argument the\n" +
			"configured dataset.path is inspected.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			path := cliCtx.Config.Dataset.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.InvalidParam("no dataset given; pass a path or set dataset.path")
			}

			ctx, cancel := cliCtx.commandContext(cmd)
			defer cancel()

			summary, err := cliCtx.Service.LoadDataset(ctx, path)
			if err != nil {
				return err
			}
			return PrintResult(cmd, datasetView{summary})
		},
	}
}

type datasetView struct {
	s *app.DatasetSummary
}

func (v datasetView) Payload() interface{} { return v.s }

func (v datasetView) Text() string {
	s := v.s
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dataset %s\n", s.Source)
	fmt.Fprintf(&sb, "  Encoding      %s\n", s.Encoding)
	fmt.Fprintf(&sb, "  Delimiter     %q\n", s.Delimiter)
	fmt.Fprintf(&sb, "  Columns       %s\n", strings.Join(s.Columns, ", "))
	fmt.Fprintf(&sb, "  Rows          %d (%d with birds, %d dropped)\n", s.Rows, s.ValidRows, s.DroppedRows)
	if s.Repaired {
		sb.WriteString("  Layout        repaired\n")
	}
	fmt.Fprintf(&sb, "  Total birds   %d\n", s.TotalBirds)
	fmt.Fprintf(&sb, "  Total deaths  %d\n", s.TotalDeaths)
	fmt.Fprintf(&sb, "  Mean density  %.2f birds/m²\n", s.MeanDensity)
	return sb.String()
}

func (v datasetView) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (v datasetView) TableRows() [][]string {
	s := v.s
	return [][]string{
		{"source", s.Source},
		{"encoding", s.Encoding},
		{"delimiter", strconv.Quote(s.Delimiter)},
		{"columns", strings.Join(s.Columns, ",")},
		{"rows", strconv.Itoa(s.Rows)},
		{"valid_rows", strconv.Itoa(s.ValidRows)},
		{"dropped_rows", strconv.Itoa(s.DroppedRows)},
		{"repaired", strconv.FormatBool(s.Repaired)},
		{"total_birds", strconv.Itoa(s.TotalBirds)},
		{"total_deaths", strconv.Itoa(s.TotalDeaths)},
		{"mean_density", formatFloat(s.MeanDensity)},
	}
}

//Personal.AI order the ending
