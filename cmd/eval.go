package cmd

import (
	"github.com/auktionera/cataloger/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run scoring evaluations against lot datasets",
		Long: `Evaluation commands score historical auction lots in bulk and
aggregate the results, so weight changes can be compared against a
fixed corpus before they reach production.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
