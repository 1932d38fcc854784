// CLI entry point for the kandang feasibility evaluator.
package main

import (
	"os"

	"github.com/turtacn/kandang-feasibility/internal/interfaces/cli"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// Execute prints the error; only the exit status is left to set here.
	if err := cli.Execute(); err != nil {
		os.Exit(errors.ExitStatus(err))
	}
}

//Personal.AI order the ending
