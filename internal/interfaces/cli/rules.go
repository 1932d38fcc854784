package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/turtacn/kandang-feasibility/internal/application/feasibility"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the fuzzy rule base",
		Long:  "Print the nine density × depletion rules with their consequent and derate factor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return PrintResult(cmd, rulesView(cliCtx.Service.Rules(cmd.Context())))
		},
	}
}

type rulesView []app.RuleView

func (v rulesView) Payload() interface{} { return []app.RuleView(v) }

func (v rulesView) TableHeaders() []string {
	return []string{"RULE", "DENSITY", "DEPLETION", "CONSEQUENT", "DERATE"}
}

func (v rulesView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, r := range v {
		rows[i] = []string{r.Code, r.Density, r.Depletion, r.Consequent, fmt.Sprintf("%.1f", r.Derate)}
	}
	return rows
}

func (v rulesView) Text() string {
	var sb strings.Builder
	for _, r := range v {
		fmt.Fprintf(&sb, "%s: IF density is %s AND depletion is %s THEN feasibility is %s", r.Code, r.Density, r.Depletion, r.Consequent)
		if r.Derate != 1 {
			fmt.Fprintf(&sb, " (×%.1f)", r.Derate)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

//Personal.AI order the ending
