package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/auktionera/cataloger/internal/gate"
	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/scoring"
	"github.com/spf13/cobra"
)

func newAssessCmd() *cobra.Command {
	var (
		recordPath     string
		lotID          string
		weightsPath    string
		field          string
		ignoredArtists []string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the sparse-data gate against a catalog record",
		Long: `Checks whether a record carries enough verified source data to
generate the requested field. Prints the missing-information codes when
the record is too sparse, so the cataloger knows what to supply before
asking for generated text.`,
		Example: `  # Check whether the record supports generating all fields
  cataloger assess --record lot.json

  # Check a single field and ignore a placeholder attribution
  cataloger assess --record lot.json --field condition --ignore-artist "Okänd konstnär"

  # Check a draft lot straight from the back office
  cataloger assess --lot 123456 --field title`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolveRecord(recordPath, lotID)
			if err != nil {
				return err
			}
			cfg, err := loadScoringConfig(weightsPath)
			if err != nil {
				return err
			}

			target := models.FieldTarget(field)
			switch target {
			case models.TargetTitle, models.TargetDescription, models.TargetCondition, models.TargetKeywords, models.TargetAll:
			default:
				return fmt.Errorf("unknown field %q, expected title, description, condition, keywords or all", field)
			}

			ignored := make(map[string]bool, len(ignoredArtists))
			for _, a := range ignoredArtists {
				ignored[strings.ToLower(strings.TrimSpace(a))] = true
			}

			g := gate.New(scoring.New(cfg), gate.DefaultFloors())
			decision := g.Assess(rec, target, ignored)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(decision)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Quality score: %d/100\n", decision.QualityScore)
			if !decision.NeedsMoreInfo {
				fmt.Fprintln(out, "Record is sufficient for generation.")
				return nil
			}
			codes := make([]string, 0, len(decision.MissingInfoCodes))
			for code := range decision.MissingInfoCodes {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			fmt.Fprintln(out, "Record needs more information before generation:")
			for _, code := range codes {
				fmt.Fprintf(out, "  - %s\n", code)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "Path to the record JSON file")
	cmd.Flags().StringVar(&lotID, "lot", "", "Lot ID to fetch from the back office instead of a file")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML weights file overriding the defaults")
	cmd.Flags().StringVarP(&field, "field", "f", string(models.TargetAll), "Field to gate (title, description, condition, keywords, all)")
	cmd.Flags().StringSliceVar(&ignoredArtists, "ignore-artist", nil, "Artist names to treat as absent (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decision as JSON")

	return cmd
}
