package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cataloger",
		Short: "Auction catalog text validation with LLM-assisted generation",
		Long: `Cataloger validates Swedish auction catalog text against the house rule set
and drives LLM-assisted generation with anti-hallucination checks.

It scores records, gates generation on data sufficiency, diffs generated
condition text for fabricated specifics, and runs a bounded correction cycle
against the configured generation provider.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newAssessCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
