package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/auktionera/cataloger/internal/catalog"
	"github.com/auktionera/cataloger/internal/models"
	"github.com/auktionera/cataloger/internal/scoring"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		recordPath  string
		lotID       string
		weightsPath string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a catalog record from a JSON file",
		Long: `Runs the quality rules against a single record snapshot and prints
the score and every warning. The record file holds one JSON object with
the category, title, description, condition, artist, keywords and value
fields.`,
		Example: `  # Score a record from a file with the default weights
  cataloger score --record lot.json

  # Score a draft lot straight from the back office
  cataloger score --lot 123456

  # Score with tuned weights and machine-readable output
  cataloger score --record lot.json --weights weights.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolveRecord(recordPath, lotID)
			if err != nil {
				return err
			}
			cfg, err := loadScoringConfig(weightsPath)
			if err != nil {
				return err
			}

			result := scoring.New(cfg).Score(rec)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Score: %d/100\n", result.Score)
			if len(result.Warnings) == 0 {
				fmt.Fprintln(out, "No warnings.")
				return nil
			}
			fmt.Fprintf(out, "Warnings (%d):\n", len(result.Warnings))
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  [%s] %s/%s (%s): %s\n", w.Severity, w.Field, w.Code, w.Source, w.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "Path to the record JSON file")
	cmd.Flags().StringVar(&lotID, "lot", "", "Lot ID to fetch from the back office instead of a file")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML weights file overriding the defaults")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// resolveRecord loads the record from a local file or, with --lot, from the
// back office configured through CATALOG_API_URL and CATALOG_API_KEY.
func resolveRecord(recordPath, lotID string) (models.CatalogRecord, error) {
	switch {
	case recordPath != "" && lotID != "":
		return models.CatalogRecord{}, errors.New("use either --record or --lot, not both")
	case recordPath != "":
		return readRecordFile(recordPath)
	case lotID != "":
		baseURL := os.Getenv("CATALOG_API_URL")
		if baseURL == "" {
			return models.CatalogRecord{}, errors.New("CATALOG_API_URL is not set")
		}
		client := catalog.NewClient(baseURL, os.Getenv("CATALOG_API_KEY"))
		return client.FetchRecord(lotID)
	default:
		return models.CatalogRecord{}, errors.New("either --record or --lot is required")
	}
}

func readRecordFile(path string) (models.CatalogRecord, error) {
	var rec models.CatalogRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("unable to read record file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("unable to parse record file %s: %w", path, err)
	}
	return rec, nil
}
